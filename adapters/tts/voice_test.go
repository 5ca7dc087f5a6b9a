package tts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriahrh/gerch/adapters/hasher"
)

type fakeSynth struct {
	calls int
	err   error
}

func (f *fakeSynth) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3:" + text), nil
}

type memStore map[string][]byte

func (m memStore) Put(_ context.Context, key string, audio []byte) error {
	m[key] = audio
	return nil
}

func (m memStore) Get(_ context.Context, key string) ([]byte, error) {
	return m[key], nil
}

func (m memStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m[key]
	return ok, nil
}

func TestStoredVoice_SynthesizesOnce(t *testing.T) {
	synth := &fakeSynth{}
	store := memStore{}
	voice := NewStoredVoice(synth, store, hasher.New(), "http://localhost:8080/")

	first, err := voice.Pointer(context.Background(), "**Hello** there")
	require.NoError(t, err)
	second, err := voice.Pointer(context.Background(), "Hello there")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, synth.calls)
	assert.Contains(t, first, "http://localhost:8080/api/audio/")
	assert.Len(t, store, 1)
}

func TestStoredVoice_SynthesisFailure(t *testing.T) {
	voice := NewStoredVoice(&fakeSynth{err: errors.New("quota")}, memStore{}, hasher.New(), "http://x")
	_, err := voice.Pointer(context.Background(), "hi")
	assert.Error(t, err)
}

type staticBuilder struct{}

func (staticBuilder) AudioURL(text string) (string, error) { return "https://tts/" + text, nil }

func TestURLVoice(t *testing.T) {
	u, err := NewURLVoice(staticBuilder{}).Pointer(context.Background(), "# Title\n\n• one")
	require.NoError(t, err)
	assert.Equal(t, "https://tts/Title one", u)
}

func TestSpeakable_ClipsOnRuneBoundary(t *testing.T) {
	long := ""
	for i := 0; i < 600; i++ {
		long += "é"
	}
	out := Speakable(long)
	assert.LessOrEqual(t, len(out), maxSpokenChars)
	assert.Equal(t, 500, len([]rune(out)))
}
