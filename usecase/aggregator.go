package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/satriahrh/gerch/domain"
	"github.com/satriahrh/gerch/utils/calc"
)

const (
	// MaxSearchLimit caps web results per query.
	MaxSearchLimit = 20
	imagePageSize  = 10

	overviewPrompt = "You are a search assistant. Write a short, factual overview " +
		"of the topic in two or three sentences. Do not use markdown."
	overviewMaxTokens   = 200
	overviewTemperature = 0.5
)

// SearchSources are the providers behind the generic search path. Any of
// them may be nil, which leaves its field absent.
type SearchSources struct {
	Dictionary   domain.DictionaryProvider
	Web          domain.WebSearcher
	Images       domain.ImageSearcher
	Encyclopedia domain.Encyclopedia
	Overview     domain.Llm
}

// Aggregator fans a query out to every search source at once and merges
// whatever comes back in time.
type Aggregator struct {
	src          SearchSources
	timeout      time.Duration
	llmTimeout   time.Duration
	defaultLimit int
}

func NewAggregator(src SearchSources, timeout, llmTimeout time.Duration, defaultLimit int) *Aggregator {
	return &Aggregator{src: src, timeout: timeout, llmTimeout: llmTimeout, defaultLimit: defaultLimit}
}

func (a *Aggregator) limit(n int) int {
	if n <= 0 {
		n = a.defaultLimit
	}
	if n <= 0 {
		n = 10
	}
	return min(n, MaxSearchLimit)
}

// Aggregate never fails: a branch that errors or times out only leaves its
// field empty. Each branch writes its own variable; they are merged after
// Wait.
func (a *Aggregator) Aggregate(ctx context.Context, query string, limit int) domain.AggregatedSearchResult {
	query = strings.TrimSpace(query)
	limit = a.limit(limit)

	var (
		g          errgroup.Group
		calculator domain.Result[domain.CalculatorResult]
		definition domain.Result[domain.Definition]
		web        domain.Result[domain.WebResults]
		images     domain.Result[[]domain.ImageResult]
		summary    domain.Result[domain.Summary]
		overview   domain.Result[string]
	)

	if calc.IsExpression(query) {
		g.Go(func() error {
			calculator = attempt(ctx, "calculator", a.timeout, func(context.Context) (domain.CalculatorResult, error) {
				v, err := calc.Evaluate(query)
				if err != nil {
					return domain.CalculatorResult{}, err
				}
				return domain.CalculatorResult{Expression: query, Result: v, Formatted: calc.Format(v)}, nil
			})
			return nil
		})
	}
	if word, ok := dictionaryWord(query); ok && a.src.Dictionary != nil {
		g.Go(func() error {
			definition = attempt(ctx, "dictionary", a.timeout, func(ctx context.Context) (domain.Definition, error) {
				return a.src.Dictionary.Define(ctx, word)
			})
			return nil
		})
	}
	if a.src.Web != nil {
		g.Go(func() error {
			web = attempt(ctx, "web", a.timeout, func(ctx context.Context) (domain.WebResults, error) {
				return a.src.Web.Search(ctx, query, limit)
			})
			return nil
		})
	}
	if a.src.Images != nil {
		g.Go(func() error {
			images = attempt(ctx, "images", a.timeout, func(ctx context.Context) ([]domain.ImageResult, error) {
				return a.src.Images.SearchImages(ctx, query, imagePageSize)
			})
			return nil
		})
	}
	if a.src.Encyclopedia != nil {
		g.Go(func() error {
			summary = attempt(ctx, "wikipedia", a.timeout, func(ctx context.Context) (domain.Summary, error) {
				return a.src.Encyclopedia.Summary(ctx, encyclopediaTitle(query))
			})
			return nil
		})
	}
	if a.src.Overview != nil {
		g.Go(func() error {
			overview = attempt(ctx, "overview", a.llmTimeout, func(ctx context.Context) (string, error) {
				text, err := a.src.Overview.Complete(ctx, domain.CompletionRequest{
					System:      overviewPrompt,
					Prompt:      query,
					MaxTokens:   overviewMaxTokens,
					Temperature: overviewTemperature,
				})
				if err != nil {
					return "", err
				}
				if text = strings.TrimSpace(text); text == "" {
					return "", domain.ErrNotFound
				}
				return text, nil
			})
			return nil
		})
	}

	_ = g.Wait()

	result := domain.AggregatedSearchResult{
		Query:      query,
		Calculator: calculator.Ptr(),
		Dictionary: definition.Ptr(),
		Results:    []domain.WebResult{},
		Images:     []domain.ImageResult{},
		Wikipedia:  summary.Ptr(),
		AIOverview: overview.Value,
	}
	if web.Ok() {
		result.Results = rankResults(web.Value.Results, limit)
		result.TotalResults = web.Value.TotalResults
		result.SearchTime = web.Value.SearchTime
	}
	if images.Ok() {
		result.Images = images.Value
	}
	return result
}

// rankResults keeps provider order, caps the list and numbers any result
// that came without a position.
func rankResults(results []domain.WebResult, limit int) []domain.WebResult {
	if len(results) > limit {
		results = results[:limit]
	}
	ranked := make([]domain.WebResult, len(results))
	for i, r := range results {
		if r.Position <= 0 {
			r.Position = i + 1
		}
		ranked[i] = r
	}
	return ranked
}

// leadingSearchPhrases matches one or more search phrases at the start of a
// query, e.g. "search who is".
var leadingSearchPhrases = func() *regexp.Regexp {
	quoted := make([]string, 0, len(searchVerbs))
	for _, p := range searchVerbs {
		quoted = append(quoted, regexp.QuoteMeta(p))
	}
	return regexp.MustCompile(`(?i)^(?:\s*(?:` + strings.Join(quoted, "|") + `)\b)+`)
}()

// encyclopediaTitle turns a question into a page title: "who is Albert
// Einstein?" becomes "Albert Einstein". Queries with nothing left after
// stripping are returned unchanged.
func encyclopediaTitle(query string) string {
	if title := residual(query, leadingSearchPhrases, queryFillers); title != "" {
		return title
	}
	return query
}

// dictionaryWord returns the word to define when query is a single word or
// one of "define X", "definition of X", "meaning of X".
func dictionaryWord(query string) (string, bool) {
	words := strings.Fields(strings.ToLower(query))
	for i, w := range words {
		words[i] = strings.Trim(w, wordPunct)
	}
	switch {
	case len(words) == 1:
		return words[0], words[0] != "" && !calc.Valid(words[0])
	case len(words) == 2 && words[0] == "define":
		return words[1], words[1] != ""
	case len(words) == 3 && words[1] == "of" && (words[0] == "definition" || words[0] == "meaning"):
		return words[2], words[2] != ""
	}
	return "", false
}
