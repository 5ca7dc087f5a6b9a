package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/satriahrh/gerch/domain"
)

// PollinationsClient uses the keyless text.pollinations.ai endpoint. It
// takes an OpenAI-style message list and replies with plain text.
type PollinationsClient struct {
	url        string
	model      string
	httpClient *http.Client
}

func NewPollinationsClient(url, model string, timeout time.Duration) *PollinationsClient {
	if url == "" {
		url = "https://text.pollinations.ai/"
	}
	return &PollinationsClient{
		url:        url,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type pollinationsMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type pollinationsRequest struct {
	Messages    []pollinationsMessage `json:"messages"`
	Model       string                `json:"model"`
	Temperature float32               `json:"temperature,omitempty"`
	MaxTokens   int                   `json:"max_tokens,omitempty"`
}

func (p *PollinationsClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	messages := make([]pollinationsMessage, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, pollinationsMessage{Role: "system", Content: req.System})
	}
	for _, msg := range req.History {
		messages = append(messages, pollinationsMessage{Role: chatRole(msg.Role), Content: msg.Content})
	}
	messages = append(messages, pollinationsMessage{Role: "user", Content: req.Prompt})

	payload, err := json.Marshal(pollinationsRequest{
		Messages:    messages,
		Model:       p.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal pollinations request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create pollinations request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("pollinations request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read pollinations response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pollinations status=%d", resp.StatusCode)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", fmt.Errorf("pollinations: empty response")
	}
	return text, nil
}
