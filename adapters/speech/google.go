package speech

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// SampleRateHertz is the rate voice clients record LINEAR16 audio at.
const SampleRateHertz = 16000

type GoogleSpeech struct {
	client       *speech.Client
	languageCode string
}

func NewGoogleSpeech(languageCode string) *GoogleSpeech {
	client, err := speech.NewClient(context.Background())
	if err != nil {
		panic(fmt.Errorf("creating Google speech client: %w", err))
	}
	return &GoogleSpeech{
		client:       client,
		languageCode: languageCode,
	}
}

// Transcribe recognizes a short (under one minute) LINEAR16 clip.
func (g *GoogleSpeech) Transcribe(ctx context.Context, audio []byte) (string, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            SampleRateHertz,
			LanguageCode:               g.languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognizing speech: %w", err)
	}

	var parts []string
	for _, result := range resp.GetResults() {
		if alts := result.GetAlternatives(); len(alts) > 0 {
			parts = append(parts, strings.TrimSpace(alts[0].GetTranscript()))
		}
	}
	return strings.Join(parts, " "), nil
}

func (g *GoogleSpeech) Close() error {
	return g.client.Close()
}
