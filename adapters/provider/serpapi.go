package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/satriahrh/gerch/domain"
)

// MaxWebResults is the hard cap on results per web search.
const MaxWebResults = 20

// SerpAPI runs Google web and image searches through serpapi.com.
type SerpAPI struct {
	base
	apiKey string
}

func NewSerpAPI(apiKey string, opts ...Option) *SerpAPI {
	return &SerpAPI{
		base:   newBase("https://serpapi.com", opts),
		apiKey: apiKey,
	}
}

type serpWebResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title         string `json:"title"`
		Link          string `json:"link"`
		Snippet       string `json:"snippet"`
		Position      int    `json:"position"`
		DisplayedLink string `json:"displayed_link"`
	} `json:"organic_results"`
	SearchInformation struct {
		TotalResults       any     `json:"total_results"`
		TimeTakenDisplayed float64 `json:"time_taken_displayed"`
	} `json:"search_information"`
}

type serpImageResponse struct {
	Error         string `json:"error"`
	ImagesResults []struct {
		Title          string `json:"title"`
		Original       string `json:"original"`
		Thumbnail      string `json:"thumbnail"`
		Link           string `json:"link"`
		OriginalWidth  int    `json:"original_width"`
		OriginalHeight int    `json:"original_height"`
	} `json:"images_results"`
}

// Search returns up to limit organic results, rank order preserved.
func (s *SerpAPI) Search(ctx context.Context, query string, limit int) (domain.WebResults, error) {
	limit = clampLimit(limit)

	var resp serpWebResponse
	err := s.getJSON(ctx, "/search.json", url.Values{
		"engine":  {"google"},
		"q":       {query},
		"num":     {strconv.Itoa(limit)},
		"hl":      {"en"},
		"gl":      {"us"},
		"api_key": {s.apiKey},
	}, &resp)
	if err != nil {
		return domain.WebResults{}, err
	}
	if resp.Error != "" {
		return domain.WebResults{}, fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, resp.Error)
	}

	results := make([]domain.WebResult, 0, len(resp.OrganicResults))
	for i, r := range resp.OrganicResults {
		if i == limit {
			break
		}
		results = append(results, normalizeWebResult(domain.WebResult{
			Title:         r.Title,
			Link:          r.Link,
			Snippet:       r.Snippet,
			Position:      r.Position,
			DisplayedLink: r.DisplayedLink,
		}, i))
	}
	if len(results) == 0 {
		return domain.WebResults{}, domain.ErrNotFound
	}

	return domain.WebResults{
		Results:      results,
		TotalResults: totalResultsString(resp.SearchInformation.TotalResults),
		SearchTime:   resp.SearchInformation.TimeTakenDisplayed,
	}, nil
}

// SearchImages returns up to limit Google Images results.
func (s *SerpAPI) SearchImages(ctx context.Context, query string, limit int) ([]domain.ImageResult, error) {
	limit = clampLimit(limit)

	var resp serpImageResponse
	err := s.getJSON(ctx, "/search.json", url.Values{
		"engine":  {"google_images"},
		"q":       {query},
		"hl":      {"en"},
		"gl":      {"us"},
		"api_key": {s.apiKey},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, resp.Error)
	}

	images := make([]domain.ImageResult, 0, limit)
	for _, r := range resp.ImagesResults {
		if len(images) == limit {
			break
		}
		if r.Original == "" {
			continue
		}
		images = append(images, domain.ImageResult{
			Title:     r.Title,
			URL:       r.Original,
			Thumbnail: r.Thumbnail,
			Source:    r.Link,
			Width:     r.OriginalWidth,
			Height:    r.OriginalHeight,
		})
	}
	if len(images) == 0 {
		return nil, domain.ErrNotFound
	}
	return images, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > MaxWebResults {
		return MaxWebResults
	}
	return limit
}

// normalizeWebResult fills the defaults for a result found at index idx.
// Providers that omit a rank get idx+1.
func normalizeWebResult(r domain.WebResult, idx int) domain.WebResult {
	if strings.TrimSpace(r.Title) == "" {
		r.Title = "Untitled"
	}
	if strings.TrimSpace(r.Snippet) == "" {
		r.Snippet = "No description available"
	}
	if r.Position <= 0 {
		r.Position = idx + 1
	}
	if r.DisplayedLink == "" {
		r.DisplayedLink = r.Link
	}
	return r
}

func totalResultsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', 0, 64)
	default:
		return fmt.Sprint(t)
	}
}
