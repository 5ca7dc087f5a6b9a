package provider

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/satriahrh/gerch/domain"
)

// Pollinations builds image and audio URLs for pollinations.ai. Generation
// happens when the client fetches the URL, so nothing here does I/O.
type Pollinations struct {
	ImageBaseURL string
	AudioBaseURL string
	Voice        string
}

func NewPollinations(voice string) *Pollinations {
	if voice == "" {
		voice = "alloy"
	}
	return &Pollinations{
		ImageBaseURL: "https://image.pollinations.ai/prompt/",
		AudioBaseURL: "https://text.pollinations.ai/",
		Voice:        voice,
	}
}

func (p *Pollinations) GenerateImageURL(prompt string, width, height int) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", domain.ErrInvalidInput
	}
	if width <= 0 {
		width = 512
	}
	if height <= 0 {
		height = 512
	}
	return fmt.Sprintf("%s%s?width=%d&height=%d&nologo=true", p.ImageBaseURL, url.PathEscape(prompt), width, height), nil
}

// AudioURL returns a text-to-speech URL for text.
func (p *Pollinations) AudioURL(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrInvalidInput
	}
	q := url.Values{"model": {"openai-audio"}, "voice": {p.Voice}}
	return p.AudioBaseURL + url.PathEscape(text) + "?" + q.Encode(), nil
}
