// Package provider holds the clients for every external data source the
// dispatcher talks to. Clients are safe for concurrent use and never retry;
// callers bound each call with a context deadline.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/satriahrh/gerch/domain"
)

const (
	userAgent        = "gerch/1.0 (+https://github.com/satriahrh/gerch)"
	defaultTimeout   = 10 * time.Second
	maxErrorBodySize = 400
	maxBodySize      = 4 << 20
)

// Option configures a provider client.
type Option func(*base)

// WithBaseURL points the client at a different upstream, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(b *base) { b.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *base) { b.httpClient = c }
}

type base struct {
	baseURL    string
	httpClient *http.Client
}

func newBase(defaultURL string, opts []Option) base {
	b := base{
		baseURL:    defaultURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b base) endpoint(path string, params url.Values) string {
	u := b.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// get fetches path and returns the body. 404 maps to domain.ErrNotFound,
// any other failure wraps domain.ErrProviderUnavailable.
func (b base) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint(path, params), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", domain.ErrProviderUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d body=%s", domain.ErrProviderUnavailable, resp.StatusCode, truncate(string(body), maxErrorBodySize))
	}
	return body, nil
}

func (b base) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	body, err := b.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", domain.ErrProviderUnavailable, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
