package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/satriahrh/gerch/domain"
)

var sampleRequest = domain.CompletionRequest{
	System: "be brief",
	History: []domain.ChatMessage{
		{Role: domain.UserRole, Content: "hi"},
		{Role: domain.AssistantRole, Content: "hello"},
	},
	Prompt:      "what's up?",
	MaxTokens:   50,
	Temperature: 0.7,
}

func TestOpenAIClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3.1-8b", body.Model)
		assert.Equal(t, 50, body.MaxTokens)
		require.Len(t, body.Messages, 4)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "assistant", body.Messages[2].Role)
		assert.Equal(t, "what's up?", body.Messages[3].Content)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"  not much  "}}]}`)
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL+"/v1", "llama3.1-8b")
	text, err := client.Complete(context.Background(), sampleRequest)
	require.NoError(t, err)
	assert.Equal(t, "not much", text)
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	_, err := NewOpenAIClient("k", server.URL+"/v1", "m").Complete(context.Background(), sampleRequest)
	assert.Error(t, err)
}

func TestPollinationsClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body pollinationsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "openai", body.Model)
		require.Len(t, body.Messages, 4)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "user", body.Messages[1].Role)
		fmt.Fprint(w, "plain reply\n")
	}))
	defer server.Close()

	text, err := NewPollinationsClient(server.URL, "openai", 5*time.Second).Complete(context.Background(), sampleRequest)
	require.NoError(t, err)
	assert.Equal(t, "plain reply", text)
}

func TestPollinationsClient_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewPollinationsClient(server.URL, "openai", 5*time.Second).Complete(context.Background(), sampleRequest)
	assert.Error(t, err)
}

func TestToGeminiContents(t *testing.T) {
	history := append([]domain.ChatMessage{{Role: domain.SystemRole, Content: "ignored"}}, sampleRequest.History...)
	contents := toGeminiContents(history, "next")

	require.Len(t, contents, 3)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, "next", contents[2].Parts[0].Text)
}
