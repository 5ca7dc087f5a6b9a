package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/satriahrh/gerch/domain"
)

// Wikipedia fetches page summaries from the Wikipedia REST API.
type Wikipedia struct {
	base
}

func NewWikipedia(opts ...Option) *Wikipedia {
	return &Wikipedia{base: newBase("https://en.wikipedia.org/api/rest_v1", opts)}
}

type wikiSummaryResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// Summary returns the lead extract of the page titled title. Disambiguation
// pages count as not found.
func (w *Wikipedia) Summary(ctx context.Context, title string) (domain.Summary, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Summary{}, domain.ErrInvalidInput
	}

	var resp wikiSummaryResponse
	path := "/page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	if err := w.getJSON(ctx, path, nil, &resp); err != nil {
		return domain.Summary{}, err
	}
	if resp.Type == "disambiguation" || strings.TrimSpace(resp.Extract) == "" {
		return domain.Summary{}, domain.ErrNotFound
	}
	return domain.Summary{
		Title:     resp.Title,
		Extract:   resp.Extract,
		URL:       resp.ContentURLs.Desktop.Page,
		Thumbnail: resp.Thumbnail.Source,
	}, nil
}
