package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/satriahrh/gerch/domain"
)

// Arxiv searches the arXiv Atom API.
type Arxiv struct {
	base
}

func NewArxiv(opts ...Option) *Arxiv {
	return &Arxiv{base: newBase("http://export.arxiv.org/api/query", opts)}
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
}

func (a *Arxiv) SearchPapers(ctx context.Context, query string, max int) ([]domain.Paper, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidInput
	}
	if max <= 0 {
		max = 5
	}

	body, err := a.get(ctx, "", url.Values{
		"search_query": {"all:" + query},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(max)},
	})
	if err != nil {
		return nil, err
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: parsing atom feed: %w", domain.ErrProviderUnavailable, err)
	}

	papers := make([]domain.Paper, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		papers = append(papers, domain.Paper{
			Title:     collapseSpace(e.Title),
			Summary:   collapseSpace(e.Summary),
			Published: strings.TrimSpace(e.Published),
			ID:        strings.TrimSpace(e.ID),
		})
	}
	if len(papers) == 0 {
		return nil, domain.ErrNotFound
	}
	return papers, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
