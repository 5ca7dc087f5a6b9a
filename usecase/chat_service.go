package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/gerch/domain"
	"github.com/satriahrh/gerch/utils/log"
	"github.com/satriahrh/gerch/utils/metrics"
)

const (
	RouteSearch = "search"
	RouteCanned = "canned"

	askPrompt = "You are a knowledgeable AI assistant. Answer the user's question " +
		"clearly and concisely. Provide accurate and helpful information."
)

type ChatService struct {
	registry     *Registry
	aggregator   *Aggregator
	conversation *Conversation
	composer     *Composer
	llm          domain.Llm
	llmTimeout   time.Duration
	deadline     time.Duration
	broker       domain.MessageBroker
}

type ChatServiceDeps struct {
	Registry     *Registry
	Aggregator   *Aggregator
	Conversation *Conversation
	Composer     *Composer
	// Llm answers /api/ask directly.
	Llm        domain.Llm
	LlmTimeout time.Duration
	// RequestTimeout bounds one Respond call end to end. Zero means only
	// the per-call timeouts apply.
	RequestTimeout time.Duration
	// Broker receives one ChatEvent per answer. Optional.
	Broker domain.MessageBroker
}

func NewChatService(deps ChatServiceDeps) *ChatService {
	return &ChatService{
		registry:     deps.Registry,
		aggregator:   deps.Aggregator,
		conversation: deps.Conversation,
		composer:     deps.Composer,
		llm:          deps.Llm,
		llmTimeout:   deps.LlmTimeout,
		deadline:     deps.RequestTimeout,
		broker:       deps.Broker,
	}
}

// Respond answers msg through the fallback chain: specialized binding,
// aggregated search, conversation. It always returns a non-empty draft.
func (s *ChatService) Respond(ctx context.Context, msg domain.Message) domain.ResponseDraft {
	start := time.Now()

	draft, route := s.answer(ctx, msg)
	ctx = log.WithRoute(ctx, route)

	metrics.Routes.WithLabelValues(route).Inc()
	log.WithCtx(ctx).Info("chat answered",
		zap.Bool("needs_search", draft.NeedsData),
		zap.Duration("elapsed", time.Since(start)))

	s.publish(ctx, domain.ChatEvent{
		RequestID:   log.RequestID(ctx),
		Message:     msg.Text,
		Route:       route,
		NeedsSearch: draft.NeedsData,
		LatencyMs:   time.Since(start).Milliseconds(),
		Timestamp:   start.UTC(),
	})
	return draft
}

// answer runs the fallback chain and the audio step under the request
// deadline. The event is published outside it so a late answer is still
// logged.
func (s *ChatService) answer(ctx context.Context, msg domain.Message) (domain.ResponseDraft, string) {
	if s.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deadline)
		defer cancel()
	}
	draft, route := s.respond(ctx, msg)
	return s.composer.WithAudio(log.WithRoute(ctx, route), draft), route
}

func (s *ChatService) respond(ctx context.Context, msg domain.Message) (domain.ResponseDraft, string) {
	if draft, name, ok := s.registry.Dispatch(ctx, msg); ok {
		return s.composer.FromHandler(ctx, msg.Text, draft), name
	}

	// Small talk with no search keyword never reaches the aggregator, so
	// "hello" is greeted rather than defined.
	if reply, ok := cannedReply(msg.Text); ok && !hasDataKeyword(strings.ToLower(msg.Text)) {
		return domain.ResponseDraft{Text: reply}, RouteCanned
	}

	if NeedsData(msg.Text) {
		result := s.aggregator.Aggregate(ctx, msg.Text, 0)
		if !result.Empty() {
			return s.composer.FromAggregate(ctx, msg.Text, result), RouteSearch
		}
		log.WithCtx(ctx).Debug("empty aggregate, falling back to conversation")
	}

	text, tier := s.conversation.converse(ctx, msg)
	return domain.ResponseDraft{Text: text}, tier
}

// Search runs the aggregator alone, for the raw search endpoint.
func (s *ChatService) Search(ctx context.Context, query string, limit int) domain.AggregatedSearchResult {
	return s.aggregator.Aggregate(ctx, query, limit)
}

// Ask sends question straight to the model. Unlike Respond it reports
// failure: domain.ErrNoMatch for an empty answer, otherwise
// domain.ErrProviderUnavailable.
func (s *ChatService) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", domain.ErrInvalidInput
	}
	if s.llm == nil {
		return "", fmt.Errorf("%w: no language model configured", domain.ErrProviderUnavailable)
	}

	res := attempt(ctx, "ask", s.llmTimeout, func(ctx context.Context) (string, error) {
		answer, err := s.llm.Complete(ctx, domain.CompletionRequest{
			System:      askPrompt,
			Prompt:      question,
			MaxTokens:   conversationMaxTokens,
			Temperature: conversationTemperature,
		})
		if err != nil {
			return "", err
		}
		if answer = strings.TrimSpace(answer); answer == "" {
			return "", domain.ErrNotFound
		}
		return answer, nil
	})
	switch res.Status {
	case domain.StatusSuccess:
		return res.Value, nil
	case domain.StatusAbsent:
		return "", fmt.Errorf("%w: empty answer", domain.ErrNoMatch)
	default:
		return "", fmt.Errorf("%w: answering question: %s", domain.ErrProviderUnavailable, res.Reason)
	}
}

// publish hands the event to the broker without blocking the response.
func (s *ChatService) publish(ctx context.Context, event domain.ChatEvent) {
	if s.broker == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithCtx(ctx).Error("encoding chat event", zap.Error(err))
		return
	}
	if err := s.broker.Publish(ctx, domain.ChatEventTopic, "", payload); err != nil {
		log.WithCtx(ctx).Debug("chat event dropped", zap.Error(err))
	}
}
