package domain

import "context"

// Voice turns response text into an audio pointer (a URL the client can
// fetch or stream).
type Voice interface {
	Pointer(ctx context.Context, text string) (string, error)
}

// Synthesizer renders text to encoded audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Transcriber turns recorded speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// AudioStore keeps synthesized clips addressable by key.
type AudioStore interface {
	Put(ctx context.Context, key string, audio []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}
