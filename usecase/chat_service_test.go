package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriahrh/gerch/domain"
	"github.com/satriahrh/gerch/utils/log"
)

type fixture struct {
	llm     *fakeLLM
	crypto  *fakeCrypto
	weather *fakeWeather
	dict    *fakeDictionary
	web     *fakeWeb
	wiki    *fakeEncyclopedia
	broker  *recordingBroker
}

func newFixture() *fixture {
	return &fixture{
		llm: &fakeLLM{err: errUpstream},
		crypto: &fakeCrypto{prices: []domain.CoinPrice{
			{ID: "bitcoin", USD: 43210.12, Change24h: 2.5},
		}},
		weather: &fakeWeather{weather: domain.Weather{Temperature: 12.3, WindSpeed: 14.2}},
		dict:    &fakeDictionary{err: domain.ErrNotFound},
		web:     &fakeWeb{err: errUpstream},
		wiki:    &fakeEncyclopedia{err: domain.ErrNotFound},
		broker:  &recordingBroker{},
	}
}

func (f *fixture) service() *ChatService {
	timeout := 200 * time.Millisecond
	return NewChatService(ChatServiceDeps{
		Registry: NewRegistry(DefaultBindings(Providers{
			Crypto:  f.crypto,
			Weather: f.weather,
			Pets:    &fakePets{},
			Jokes:   fakeJokes{},
		}, timeout)...),
		Aggregator: NewAggregator(SearchSources{
			Dictionary:   f.dict,
			Web:          f.web,
			Encyclopedia: f.wiki,
			Overview:     f.llm,
		}, timeout, timeout, 10),
		Conversation: NewConversation(f.llm, timeout, 6),
		Composer:     NewComposer(f.llm, nil, ComposerOptions{EnrichTimeout: timeout, EnrichSearch: true}),
		Llm:          f.llm,
		LlmTimeout:   timeout,
		Broker:       f.broker,
	})
}

func TestRespond_WeatherInLondon(t *testing.T) {
	f := newFixture()
	draft := f.service().Respond(context.Background(), domain.Message{Text: "weather in London"})

	assert.Contains(t, draft.Text, "London")
	assert.Contains(t, draft.Text, "Temperature: 12.3°C")
	assert.True(t, draft.NeedsData)
	assert.InDelta(t, 51.5074, f.weather.lat, 1e-9)
	assert.InDelta(t, -0.1278, f.weather.lon, 1e-9)
}

func TestRespond_BitcoinPrice(t *testing.T) {
	f := newFixture()
	draft := f.service().Respond(context.Background(), domain.Message{Text: "bitcoin price"})

	assert.Contains(t, draft.Text, "• Bitcoin: $43,210.12")
	assert.Equal(t, []string{"bitcoin"}, f.crypto.gotIDs)
}

func TestRespond_HelloFallsBackToGreeting(t *testing.T) {
	f := newFixture()
	draft := f.service().Respond(context.Background(), domain.Message{Text: "hello"})

	assert.Equal(t, cannedRules[0].reply, draft.Text)
	assert.False(t, draft.NeedsData)
	assert.Nil(t, draft.Payload)
}

func TestRespond_SmallTalkSkipsSearch(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"hello", cannedRules[0].reply},
		{"thanks", cannedRules[2].reply},
		{"goodbye", cannedRules[4].reply},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			f := newFixture()
			f.llm = &fakeLLM{reply: "an overview"}
			f.dict = &fakeDictionary{def: sampleDefinition()}
			draft := f.service().Respond(context.Background(), domain.Message{Text: tt.text})

			assert.Equal(t, tt.want, draft.Text)
			assert.Nil(t, draft.Payload)
			assert.Equal(t, int32(0), f.dict.calls.Load())
			assert.Equal(t, int32(0), f.llm.calls.Load())
		})
	}
}

func TestRespond_GreetingWithSearchStillSearches(t *testing.T) {
	f := newFixture()
	f.wiki = &fakeEncyclopedia{summary: domain.Summary{Title: "Albert Einstein", Extract: "German-born physicist."}}
	draft := f.service().Respond(context.Background(), domain.Message{Text: "hi, who is Albert Einstein"})

	require.NotNil(t, draft.Payload)
	assert.NotNil(t, draft.Payload.Wikipedia)
	assert.Contains(t, draft.Text, "German-born physicist.")
}

func TestRespond_EncyclopediaGetsTitle(t *testing.T) {
	f := newFixture()
	f.service().Respond(context.Background(), domain.Message{Text: "who is Albert Einstein?"})
	f.service().Respond(context.Background(), domain.Message{Text: "tell me about the Eiffel Tower"})
	f.service().Respond(context.Background(), domain.Message{Text: "what is quantum computing"})

	assert.Equal(t, []string{"Albert Einstein", "Eiffel Tower", "quantum computing"}, f.wiki.titles)
}

func TestRespond_RequestDeadline(t *testing.T) {
	f := newFixture()
	f.web = &fakeWeb{delay: time.Second}
	f.llm = &fakeLLM{reply: "late", delay: time.Second}
	svc := f.service()
	svc.deadline = 50 * time.Millisecond

	start := time.Now()
	draft := svc.Respond(context.Background(), domain.Message{Text: "search the history of rome"})

	assert.Less(t, time.Since(start), 150*time.Millisecond)
	assert.Equal(t, ApologyReply, draft.Text)
}

func TestRespond_RomanEmpireApology(t *testing.T) {
	f := newFixture()
	draft := f.service().Respond(context.Background(), domain.Message{Text: "tell me a detailed history of the Roman Empire"})

	assert.Equal(t, ApologyReply, draft.Text)
	assert.Equal(t, int32(1), f.llm.calls.Load(), "only the conversation tier calls the model")
}

func TestRespond_SearchWithDictionary(t *testing.T) {
	f := newFixture()
	f.dict = &fakeDictionary{def: sampleDefinition()}
	draft := f.service().Respond(context.Background(), domain.Message{Text: "define serendipity"})

	assert.Contains(t, draft.Text, "**serendipity**")
	require.NotNil(t, draft.Payload)
	assert.NotNil(t, draft.Payload.Dictionary)
	assert.True(t, draft.NeedsData)
}

func TestRespond_PublishesChatEvent(t *testing.T) {
	f := newFixture()
	ctx := log.WithRequestID(context.Background(), "req-1")
	f.service().Respond(ctx, domain.Message{Text: "bitcoin price"})

	require.Len(t, f.broker.published, 1)
	var event domain.ChatEvent
	require.NoError(t, json.Unmarshal(f.broker.published[0], &event))
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, "crypto", event.Route)
	assert.Equal(t, "bitcoin price", event.Message)
	assert.True(t, event.NeedsSearch)
}

func TestSearch(t *testing.T) {
	f := newFixture()
	f.web = sampleWeb()
	r := f.service().Search(context.Background(), "golang", 2)

	assert.Equal(t, "golang", r.Query)
	assert.Len(t, r.Results, 2)
	assert.Equal(t, int32(2), f.web.limit.Load())
}

func TestAsk(t *testing.T) {
	f := newFixture()
	f.llm = &fakeLLM{reply: " Paris. "}
	answer, err := f.service().Ask(context.Background(), "capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "Paris.", answer)
	assert.Equal(t, askPrompt, f.llm.lastRequest().System)

	f.llm = &fakeLLM{err: errUpstream}
	_, err = f.service().Ask(context.Background(), "capital of France?")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)

	f.llm = &fakeLLM{reply: "  "}
	_, err = f.service().Ask(context.Background(), "capital of France?")
	assert.ErrorIs(t, err, domain.ErrNoMatch)

	_, err = f.service().Ask(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
