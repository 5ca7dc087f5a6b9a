package domain

import (
	"context"
	"time"
)

// MessageBroker defines the interface for message broker operations
type MessageBroker interface {
	// Publish sends a message to a specific topic/channel with a routing key
	Publish(ctx context.Context, topic string, routingKey string, message []byte) error

	// Subscribe listens for messages on a specific topic/channel and routing key
	Subscribe(ctx context.Context, topic string, routingKey string) (<-chan BrokerMessage, error)

	// Close closes the message broker connection
	Close() error
}

// BrokerMessage represents a message received from the broker
type BrokerMessage struct {
	Topic      string
	RoutingKey string
	Payload    []byte
	Timestamp  time.Time
}

// ChatEventTopic carries one ChatEvent per answered chat request.
const ChatEventTopic = "chat.events"

// ChatEvent is the log record of an answered chat request.
type ChatEvent struct {
	RequestID   string    `json:"request_id" bson:"request_id"`
	Message     string    `json:"message" bson:"message"`
	Route       string    `json:"route" bson:"route"`
	NeedsSearch bool      `json:"needs_search" bson:"needs_search"`
	LatencyMs   int64     `json:"latency_ms" bson:"latency_ms"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

// ChatLogWriter persists chat events.
type ChatLogWriter interface {
	Write(ctx context.Context, event ChatEvent) error
}
