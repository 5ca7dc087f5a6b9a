package provider

import (
	"context"

	"github.com/satriahrh/gerch/domain"
)

// ChuckNorris serves random jokes from api.chucknorris.io.
type ChuckNorris struct {
	base
}

func NewChuckNorris(opts ...Option) *ChuckNorris {
	return &ChuckNorris{base: newBase("https://api.chucknorris.io/jokes", opts)}
}

func (c *ChuckNorris) RandomJoke(ctx context.Context) (string, error) {
	var resp struct {
		Value string `json:"value"`
	}
	if err := c.getJSON(ctx, "/random", nil, &resp); err != nil {
		return "", err
	}
	if resp.Value == "" {
		return "", domain.ErrNotFound
	}
	return resp.Value, nil
}
