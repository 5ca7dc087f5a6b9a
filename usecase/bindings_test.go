package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriahrh/gerch/domain"
)

func msg(text string) domain.Message { return domain.Message{Text: text} }

func TestExtractImagePrompt(t *testing.T) {
	tests := map[string]string{
		"Generate an image of a red fox": "red fox",
		"draw a castle in the clouds":    "castle in the clouds",
		"create an image: a sunset!":     "sunset",
		"paint mountains at dawn":        "mountains at dawn",
		"make an image of an owl":        "owl",
	}
	for in, want := range tests {
		got, ok := extractImagePrompt(msg(in))
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := extractImagePrompt(msg("generate an image"))
	assert.False(t, ok)
}

func TestExtractCoins(t *testing.T) {
	ids, _ := extractCoins(msg("What's the price of ETH and bitcoin?"))
	assert.Equal(t, []string{"bitcoin", "ethereum"}, ids)

	ids, _ = extractCoins(msg("solana price"))
	assert.Equal(t, []string{"solana"}, ids)

	ids, _ = extractCoins(msg("crypto market today"))
	assert.Equal(t, defaultCoins, ids)
}

func TestExtractCity(t *testing.T) {
	c, _ := extractCity(msg("weather in London"))
	assert.Equal(t, "London", c.Name)
	assert.InDelta(t, 51.5074, c.Lat, 1e-9)

	c, _ = extractCity(msg("what's the forecast"))
	assert.Equal(t, "New York", c.Name)
}

func TestExtractQueries(t *testing.T) {
	q, ok := extractPaperQuery(msg("Find research papers on quantum computing"))
	require.True(t, ok)
	assert.Equal(t, "quantum computing", q)

	q, ok = extractQuestionQuery(msg("stackoverflow questions about goroutine leaks"))
	require.True(t, ok)
	assert.Equal(t, "goroutine leaks", q)

	_, ok = extractPaperQuery(msg("arxiv"))
	assert.False(t, ok)
}

func TestExtractPet(t *testing.T) {
	q, _ := extractPet(msg("show me a husky puppy"))
	assert.Equal(t, petQuery{Kind: "dog", Breed: "husky"}, q)

	q, _ = extractPet(msg("I want a kitten"))
	assert.Equal(t, petQuery{Kind: "cat"}, q)
}

func TestExtractIP(t *testing.T) {
	ip, _ := extractIP(msg("ip lookup 8.8.8.8."))
	assert.Equal(t, "8.8.8.8", ip)

	ip, _ = extractIP(msg("what is my ip"))
	assert.Empty(t, ip)
}

func TestFormatters(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(DefaultBindings(Providers{
		Images: &fakeImageGen{},
		Papers: &fakePapers{},
		QA:     &fakeQA{},
		Jokes:  fakeJokes{},
		Quotes: fakeQuotes{},
		IP:     &fakeIP{},
	}, time.Second)...)

	draft, _, _ := r.Dispatch(ctx, msg("generate an image of a red fox"))
	require.NotNil(t, draft.Payload)
	require.Len(t, draft.Payload.Images, 1)
	assert.Equal(t, "https://image.example/red fox", draft.Payload.Images[0].URL)
	assert.True(t, draft.NeedsData)

	draft, _, _ = r.Dispatch(ctx, msg("research papers on transformers"))
	assert.Contains(t, draft.Text, "Research Papers")
	assert.Contains(t, draft.Text, "(2017-06-12)")

	draft, _, _ = r.Dispatch(ctx, msg("stack overflow reverse slice"))
	assert.Contains(t, draft.Text, "Programming Questions")
	assert.Contains(t, draft.Text, "Score: 42 | Answers: 7")

	draft, _, _ = r.Dispatch(ctx, msg("tell me a joke"))
	assert.Equal(t, "😄 Chuck Norris counted to infinity. Twice.", draft.Text)

	draft, _, _ = r.Dispatch(ctx, msg("give me a quote"))
	assert.Equal(t, "\"Talk is cheap. Show me the code.\"\n\n— Linus Torvalds", draft.Text)

	draft, _, _ = r.Dispatch(ctx, msg("what is my ip"))
	assert.Contains(t, draft.Text, "IP Information")
	assert.Contains(t, draft.Text, "IP: 8.8.8.8")
	assert.Contains(t, draft.Text, "Location: Mountain View, California, US")
}

func TestFormatPrices(t *testing.T) {
	draft := formatPrices(nil, []domain.CoinPrice{
		{ID: "bitcoin", USD: 43210.12, Change24h: 2.5},
		{ID: "ethereum", USD: 2345.5, Change24h: -1.25},
	})
	assert.Contains(t, draft.Text, "Cryptocurrency Prices")
	assert.Contains(t, draft.Text, "• Bitcoin: $43,210.12 (+2.50% 24h)")
	assert.Contains(t, draft.Text, "• Ethereum: $2,345.50 (-1.25% 24h)")
}
