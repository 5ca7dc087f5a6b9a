package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriahrh/gerch/domain"
)

func TestConverse_CannedGreetingSkipsModel(t *testing.T) {
	llm := &fakeLLM{reply: "should not be used"}
	c := NewConversation(llm, time.Second, 6)

	assert.Equal(t, cannedRules[0].reply, c.Converse(context.Background(), domain.Message{Text: "hello"}))
	assert.Equal(t, cannedRules[0].reply, c.Converse(context.Background(), domain.Message{Text: "Hi!"}))
	assert.Equal(t, int32(0), llm.calls.Load())
}

func TestCannedReply_Order(t *testing.T) {
	tests := map[string]int{
		"Hey, how are you?":       0,
		"how are you doing today": 1,
		"thank you so much":       2,
		"what can you do":         3,
		"ok bye":                  4,
	}
	for text, idx := range tests {
		reply, ok := cannedReply(text)
		require.True(t, ok, text)
		assert.Equal(t, cannedRules[idx].reply, reply, text)
	}

	_, ok := cannedReply("tell me the history of chips")
	assert.False(t, ok, "word boundaries keep 'hi' out of 'history' and 'chips'")
}

func TestConverse_ModelWithBoundedHistory(t *testing.T) {
	llm := &fakeLLM{reply: "  The Roman Empire lasted centuries.  "}
	c := NewConversation(llm, time.Second, 2)

	history := []domain.ChatMessage{
		{Role: domain.UserRole, Content: "one"},
		{Role: domain.AssistantRole, Content: "two"},
		{Role: domain.UserRole, Content: "three"},
	}
	text := "tell me a detailed history of the Roman Empire"
	reply := c.Converse(context.Background(), domain.Message{Text: text, History: history})

	assert.Equal(t, "The Roman Empire lasted centuries.", reply)
	req := llm.lastRequest()
	assert.Equal(t, ConversationPrompt, req.System)
	assert.Equal(t, history[1:], req.History)
	assert.Equal(t, text, req.Prompt)
	assert.Equal(t, 500, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 1e-6)
}

func TestConverse_ApologyOnModelFailure(t *testing.T) {
	ctx := context.Background()
	msg := domain.Message{Text: "tell me a detailed history of the Roman Empire"}

	failing := NewConversation(&fakeLLM{err: errUpstream}, time.Second, 6)
	assert.Equal(t, ApologyReply, failing.Converse(ctx, msg))

	slow := NewConversation(&fakeLLM{reply: "late", delay: time.Second}, 20*time.Millisecond, 6)
	assert.Equal(t, ApologyReply, slow.Converse(ctx, msg))

	empty := NewConversation(&fakeLLM{reply: "   "}, time.Second, 6)
	assert.Equal(t, ApologyReply, empty.Converse(ctx, msg))

	none := NewConversation(nil, time.Second, 6)
	assert.Equal(t, ApologyReply, none.Converse(ctx, msg))
}
