package tts

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/satriahrh/gerch/domain"
)

// maxSpokenChars bounds how much of a response is turned into audio.
const maxSpokenChars = 1000

// AudioURLBuilder builds a streamable speech URL without doing I/O.
type AudioURLBuilder interface {
	AudioURL(text string) (string, error)
}

// URLVoice hands out URLs from a remote TTS service such as Pollinations.
type URLVoice struct {
	builder AudioURLBuilder
}

func NewURLVoice(builder AudioURLBuilder) *URLVoice {
	return &URLVoice{builder: builder}
}

func (v *URLVoice) Pointer(_ context.Context, text string) (string, error) {
	return v.builder.AudioURL(Speakable(text))
}

// StoredVoice synthesizes clips once, keeps them in an AudioStore keyed by
// the text hash, and points clients at the server's audio endpoint.
type StoredVoice struct {
	synth   domain.Synthesizer
	store   domain.AudioStore
	hasher  domain.Hasher
	baseURL string
}

func NewStoredVoice(synth domain.Synthesizer, store domain.AudioStore, hasher domain.Hasher, baseURL string) *StoredVoice {
	return &StoredVoice{
		synth:   synth,
		store:   store,
		hasher:  hasher,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (v *StoredVoice) Pointer(ctx context.Context, text string) (string, error) {
	text = Speakable(text)
	if text == "" {
		return "", domain.ErrInvalidInput
	}
	key := v.hasher.Hash([]byte(text))
	url := v.baseURL + "/api/audio/" + key

	exists, err := v.store.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("checking audio store: %w", err)
	}
	if exists {
		return url, nil
	}

	audio, err := v.synth.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}
	if err := v.store.Put(ctx, key, audio); err != nil {
		return "", fmt.Errorf("storing audio: %w", err)
	}
	return url, nil
}

// Speakable strips markdown decoration and clips text to a speakable length.
func Speakable(text string) string {
	text = strings.NewReplacer("**", "", "*", "", "`", "", "#", "", "•", "").Replace(text)
	text = strings.Join(strings.Fields(text), " ")
	return clip(text, maxSpokenChars)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
