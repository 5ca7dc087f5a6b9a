package message_broker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	b := NewChannelMessageBroker(4)
	ctx := context.Background()

	ch, err := b.Subscribe(ctx, "chat.events", "")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "chat.events", "", []byte(`{"route":"crypto"}`)))
	msg := <-ch
	assert.Equal(t, "chat.events", msg.Topic)
	assert.JSONEq(t, `{"route":"crypto"}`, string(msg.Payload))
	assert.False(t, msg.Timestamp.IsZero())
	assert.Equal(t, 1, b.TopicCount())
}

func TestPublishBeforeSubscribeIsQueued(t *testing.T) {
	b := NewChannelMessageBroker(4)
	ctx := context.Background()

	require.NoError(t, b.Publish(ctx, "t", "k", []byte("a")))
	ch, err := b.Subscribe(ctx, "t", "k")
	require.NoError(t, err)
	assert.Equal(t, "a", string((<-ch).Payload))
}

func TestPublishFullTopicDoesNotBlock(t *testing.T) {
	b := NewChannelMessageBroker(1)
	ctx := context.Background()

	require.NoError(t, b.Publish(ctx, "t", "", []byte("1")))
	err := b.Publish(ctx, "t", "", []byte("2"))
	assert.ErrorIs(t, err, ErrTopicFull)
}

func TestClose(t *testing.T) {
	b := NewChannelMessageBroker(0)
	ctx := context.Background()

	ch, err := b.Subscribe(ctx, "t", "")
	require.NoError(t, err)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, open := <-ch
	assert.False(t, open)
	assert.ErrorIs(t, b.Publish(ctx, "t", "", nil), ErrBrokerClosed)
	_, err = b.Subscribe(ctx, "t", "")
	assert.ErrorIs(t, err, ErrBrokerClosed)
}
