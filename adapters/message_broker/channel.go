package message_broker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/satriahrh/gerch/domain"
	"github.com/satriahrh/gerch/utils/log"
	"go.uber.org/zap"
)

// DefaultBufferSize is the per-topic queue length.
const DefaultBufferSize = 256

var (
	ErrBrokerClosed = errors.New("message broker is closed")
	ErrTopicFull    = errors.New("topic channel is full")
)

// ChannelMessageBroker implements domain.MessageBroker on buffered channels.
// Publish never blocks: a full topic drops the message.
type ChannelMessageBroker struct {
	topics     map[string]chan domain.BrokerMessage
	bufferSize int
	mu         sync.Mutex
	closed     bool
}

func NewChannelMessageBroker(bufferSize int) *ChannelMessageBroker {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &ChannelMessageBroker{
		topics:     make(map[string]chan domain.BrokerMessage),
		bufferSize: bufferSize,
	}
}

func makeKey(topic, routingKey string) string {
	return topic + ":" + routingKey
}

// channel returns the queue for key, creating it on first use. Caller holds mu.
func (b *ChannelMessageBroker) channel(key string) chan domain.BrokerMessage {
	ch, ok := b.topics[key]
	if !ok {
		ch = make(chan domain.BrokerMessage, b.bufferSize)
		b.topics[key] = ch
	}
	return ch
}

func (b *ChannelMessageBroker) Publish(ctx context.Context, topic string, routingKey string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrokerClosed
	}

	msg := domain.BrokerMessage{
		Topic:      topic,
		RoutingKey: routingKey,
		Payload:    message,
		Timestamp:  time.Now(),
	}

	select {
	case b.channel(makeKey(topic, routingKey)) <- msg:
		log.WithCtx(ctx).Debug("message published",
			zap.String("topic", topic),
			zap.String("routing_key", routingKey),
			zap.Int("payload_size", len(message)))
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrTopicFull, makeKey(topic, routingKey))
	}
}

// Subscribe returns the queue for topic and routingKey. Subscribers on the
// same key compete for messages.
func (b *ChannelMessageBroker) Subscribe(ctx context.Context, topic string, routingKey string) (<-chan domain.BrokerMessage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBrokerClosed
	}

	log.WithCtx(ctx).Info("subscribed to topic", zap.String("topic", topic), zap.String("routing_key", routingKey))
	return b.channel(makeKey(topic, routingKey)), nil
}

// Close closes every topic channel; pending messages can still be drained.
func (b *ChannelMessageBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, ch := range b.topics {
		close(ch)
	}
	b.topics = make(map[string]chan domain.BrokerMessage)

	log.With().Info("message broker closed")
	return nil
}

func (b *ChannelMessageBroker) TopicCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics)
}
