package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/satriahrh/gerch/domain"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient reads credentials from the environment the way the genai
// SDK does (GOOGLE_API_KEY, or Vertex AI project settings).
func NewGeminiClient(model string) domain.Llm {
	ctx := context.TODO()

	client, err := genai.NewClient(
		ctx,
		&genai.ClientConfig{
			HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
		},
	)
	if err != nil {
		panic(fmt.Errorf("creating genai client: %w", err))
	}

	return &GeminiClient{client: client, model: model}
}

func (g *GeminiClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
		Temperature:     genai.Ptr(req.Temperature),
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, toGeminiContents(req.History, req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("generate content: empty response")
	}
	return text, nil
}

func toGeminiContents(history []domain.ChatMessage, prompt string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		if msg.Role == domain.SystemRole || strings.TrimSpace(msg.Content) == "" {
			continue
		}
		role := genai.RoleModel
		if msg.Role == domain.UserRole {
			role = genai.RoleUser
		}
		contents = append(contents, &genai.Content{
			Role: role,
			Parts: []*genai.Part{
				{Text: msg.Content},
			},
		})
	}
	return append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: prompt}},
	})
}
