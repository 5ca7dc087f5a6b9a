package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/satriahrh/gerch/domain"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint,
// e.g. Cerebras at https://api.cerebras.ai/v1 with model llama3.1-8b.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAIClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    toOpenAIMessages(req),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("chat completion: empty response")
	}
	return text, nil
}

func toOpenAIMessages(req domain.CompletionRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, msg := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{Role: chatRole(msg.Role), Content: msg.Content})
	}
	return append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})
}

func chatRole(r domain.Role) string {
	switch r {
	case domain.UserRole:
		return openai.ChatMessageRoleUser
	case domain.SystemRole:
		return openai.ChatMessageRoleSystem
	default:
		return openai.ChatMessageRoleAssistant
	}
}
