package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/satriahrh/gerch/domain"
)

const (
	ConversationPrompt = "You are Gerch, a friendly and concise search assistant. " +
		"Answer conversationally in a few sentences. When the user needs facts, " +
		"suggest they ask you to search for them."

	// ApologyReply is the last-resort answer when no other tier produced one.
	ApologyReply = "I'm sorry, I'm having trouble answering that right now. " +
		"Try asking me to search for something, or ask about the weather or crypto prices."

	conversationMaxTokens   = 500
	conversationTemperature = 0.7
)

type cannedRule struct {
	phrases []string
	reply   string
}

// cannedRules are checked in order; the first phrase hit wins.
var cannedRules = []cannedRule{
	{
		phrases: []string{"hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening"},
		reply:   "Hello! I'm Gerch, your search assistant. Ask me to search the web, check prices, find papers, or just chat.",
	},
	{
		phrases: []string{"how are you", "how are you doing", "how is it going", "how s it going"},
		reply:   "I'm doing great, thanks for asking! What can I look up for you?",
	},
	{
		phrases: []string{"thanks", "thank you", "thx", "appreciate it"},
		reply:   "You're welcome! Let me know if there's anything else you'd like to find.",
	},
	{
		phrases: []string{"what can you do", "who are you", "what are you", "help me", "what do you do"},
		reply: "I can search the web, define words, do math, and show crypto prices, weather, research papers, " +
			"programming questions, Pokémon, pet pictures, jokes, quotes and IP info. I can also generate images.",
	},
	{
		phrases: []string{"bye", "goodbye", "see you", "good night", "farewell"},
		reply:   "Goodbye! Come back any time you need to find something.",
	},
}

// normalize lower-cases text and turns punctuation into spaces so phrases
// match on word boundaries.
func normalize(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return " " + strings.Join(strings.Fields(mapped), " ") + " "
}

func cannedReply(text string) (string, bool) {
	norm := normalize(text)
	for _, rule := range cannedRules {
		for _, p := range rule.phrases {
			if strings.Contains(norm, " "+p+" ") {
				return rule.reply, true
			}
		}
	}
	return "", false
}

// Conversation answers messages that need no external data.
type Conversation struct {
	llm     domain.Llm
	timeout time.Duration
	window  int
}

func NewConversation(llm domain.Llm, timeout time.Duration, historyWindow int) *Conversation {
	return &Conversation{llm: llm, timeout: timeout, window: historyWindow}
}

// Converse returns a canned reply, else the model's answer, else
// ApologyReply. It never returns an empty string.
func (c *Conversation) Converse(ctx context.Context, msg domain.Message) string {
	reply, _ := c.converse(ctx, msg)
	return reply
}

// converse also reports which tier answered: canned, llm or apology.
func (c *Conversation) converse(ctx context.Context, msg domain.Message) (string, string) {
	if reply, ok := cannedReply(msg.Text); ok {
		return reply, RouteCanned
	}
	if c.llm == nil {
		return ApologyReply, "apology"
	}

	res := attempt(ctx, "llm", c.timeout, func(ctx context.Context) (string, error) {
		text, err := c.llm.Complete(ctx, domain.CompletionRequest{
			System:      ConversationPrompt,
			History:     domain.Window(msg.History, c.window),
			Prompt:      msg.Text,
			MaxTokens:   conversationMaxTokens,
			Temperature: conversationTemperature,
		})
		if err != nil {
			return "", err
		}
		if text = strings.TrimSpace(text); text == "" {
			return "", domain.ErrNotFound
		}
		return text, nil
	})
	if res.Ok() {
		return res.Value, "llm"
	}
	return ApologyReply, "apology"
}
