package domain

import "context"

// Llm abstracts any chat/LLM provider.
type Llm interface {
	// Complete returns the model's reply to req.Prompt given the system
	// prompt and the prior turns in req.History.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	System      string
	History     []ChatMessage
	Prompt      string
	MaxTokens   int
	Temperature float32
}

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
	SystemRole    Role = "system"
)

// Window returns the last n entries of history. n <= 0 means no history.
func Window(history []ChatMessage, n int) []ChatMessage {
	if n <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
