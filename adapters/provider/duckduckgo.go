package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/satriahrh/gerch/domain"
)

// DuckDuckGo scrapes the keyless HTML endpoint. It stands in for SerpAPI
// when no API key is configured.
type DuckDuckGo struct {
	base
}

func NewDuckDuckGo(opts ...Option) *DuckDuckGo {
	return &DuckDuckGo{base: newBase("https://html.duckduckgo.com", opts)}
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) (domain.WebResults, error) {
	limit = clampLimit(limit)

	body, err := d.get(ctx, "/html/", url.Values{"q": {query}})
	if err != nil {
		return domain.WebResults{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.WebResults{}, fmt.Errorf("%w: parsing html: %w", domain.ErrProviderUnavailable, err)
	}

	var results []domain.WebResult
	doc.Find(".result").Not(".result--ad").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		anchor := s.Find(".result__a").First()
		href, _ := anchor.Attr("href")
		link := resolveDuckLink(href)
		if link == "" {
			return true
		}
		results = append(results, normalizeWebResult(domain.WebResult{
			Title:         strings.TrimSpace(anchor.Text()),
			Link:          link,
			Snippet:       strings.TrimSpace(s.Find(".result__snippet").First().Text()),
			DisplayedLink: strings.TrimSpace(s.Find(".result__url").First().Text()),
		}, len(results)))
		return len(results) < limit
	})
	if len(results) == 0 {
		return domain.WebResults{}, domain.ErrNotFound
	}
	return domain.WebResults{Results: results}, nil
}

// resolveDuckLink unwraps the /l/?uddg= redirect DuckDuckGo puts on links.
func resolveDuckLink(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return href
}
