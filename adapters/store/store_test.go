package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriahrh/gerch/adapters/message_broker"
	"github.com/satriahrh/gerch/domain"
)

type recordingWriter struct {
	mu     sync.Mutex
	events []domain.ChatEvent
	fail   bool
}

func (w *recordingWriter) Write(_ context.Context, event domain.ChatEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return errors.New("disk full")
	}
	w.events = append(w.events, event)
	return nil
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.events)
}

func TestRunChatLog(t *testing.T) {
	broker := message_broker.NewChannelMessageBroker(8)
	writer := &recordingWriter{}

	done := make(chan error, 1)
	go func() {
		done <- RunChatLog(context.Background(), broker, writer)
	}()

	payload, err := json.Marshal(domain.ChatEvent{RequestID: "r1", Route: "crypto", LatencyMs: 12})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, broker.Publish(ctx, domain.ChatEventTopic, "", []byte("not json")))
	require.NoError(t, broker.Publish(ctx, domain.ChatEventTopic, "", payload))

	require.Eventually(t, func() bool { return writer.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "crypto", writer.events[0].Route)
	assert.Equal(t, int64(12), writer.events[0].LatencyMs)

	require.NoError(t, broker.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("RunChatLog did not stop after broker close")
	}
}

func TestRunChatLogStopsOnCancel(t *testing.T) {
	broker := message_broker.NewChannelMessageBroker(8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunChatLog(ctx, broker, &recordingWriter{fail: true})
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("RunChatLog did not stop after cancel")
	}
}

func TestLogChatLog(t *testing.T) {
	assert.NoError(t, NewLogChatLog().Write(context.Background(), domain.ChatEvent{RequestID: "r"}))
}

func TestNewMongoChatLogValidates(t *testing.T) {
	_, err := NewMongoChatLog(context.Background(), "", "gerch")
	assert.Error(t, err)
	_, err = NewMongoChatLog(context.Background(), "mongodb://localhost", "")
	assert.Error(t, err)
}

// Requires a Redis server at REDIS_ADDR.
func TestRedisAudioStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	s, err := NewRedisAudioStore(RedisConfig{Addr: addr, TTL: time.Minute})
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	key := "test-" + time.Now().Format("150405.000000")

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Put(ctx, key, []byte("mp3")))
	ok, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), data)
}
