package provider

import (
	"context"
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/satriahrh/gerch/domain"
)

// StackExchange searches questions on a Stack Exchange site.
type StackExchange struct {
	base
	site string
}

func NewStackExchange(opts ...Option) *StackExchange {
	return &StackExchange{
		base: newBase("https://api.stackexchange.com/2.3", opts),
		site: "stackoverflow",
	}
}

type stackExchangeResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Score       int    `json:"score"`
		AnswerCount int    `json:"answer_count"`
		Link        string `json:"link"`
	} `json:"items"`
}

func (s *StackExchange) SearchQuestions(ctx context.Context, query string, max int) ([]domain.Question, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidInput
	}
	if max <= 0 {
		max = 5
	}

	var resp stackExchangeResponse
	err := s.getJSON(ctx, "/search/advanced", url.Values{
		"intitle":  {query},
		"site":     {s.site},
		"sort":     {"relevance"},
		"order":    {"desc"},
		"pagesize": {strconv.Itoa(max)},
		"filter":   {"default"},
	}, &resp)
	if err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, len(resp.Items))
	for _, item := range resp.Items {
		questions = append(questions, domain.Question{
			Title:       html.UnescapeString(item.Title),
			Score:       item.Score,
			AnswerCount: item.AnswerCount,
			Link:        item.Link,
		})
	}
	if len(questions) == 0 {
		return nil, domain.ErrNotFound
	}
	return questions, nil
}
