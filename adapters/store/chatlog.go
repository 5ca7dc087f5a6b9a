package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/satriahrh/gerch/domain"
	"github.com/satriahrh/gerch/utils/log"
)

// LogChatLog writes chat events to the structured log. It is the writer used
// when no MONGO_URL is configured.
type LogChatLog struct {
	logger *zap.Logger
}

func NewLogChatLog() *LogChatLog {
	return &LogChatLog{logger: log.With(zap.String("component", "chat_log"))}
}

func (l *LogChatLog) Write(_ context.Context, event domain.ChatEvent) error {
	l.logger.Info("chat event",
		zap.String("request_id", event.RequestID),
		zap.String("route", event.Route),
		zap.Bool("needs_search", event.NeedsSearch),
		zap.Int64("latency_ms", event.LatencyMs),
		zap.Time("timestamp", event.Timestamp))
	return nil
}

// RunChatLog drains ChatEventTopic into writer until ctx is done or the
// broker closes. Undecodable payloads and write failures are logged and
// skipped.
func RunChatLog(ctx context.Context, broker domain.MessageBroker, writer domain.ChatLogWriter) error {
	events, err := broker.Subscribe(ctx, domain.ChatEventTopic, "")
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			var event domain.ChatEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				log.WithCtx(ctx).Warn("dropping undecodable chat event", zap.Error(err))
				continue
			}
			if err := writer.Write(ctx, event); err != nil {
				log.WithCtx(ctx).Error("writing chat event", zap.String("request_id", event.RequestID), zap.Error(err))
			}
		}
	}
}
