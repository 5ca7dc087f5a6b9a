package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/gerch/domain"
	"github.com/satriahrh/gerch/utils/log"
)

const (
	enrichPrompt = "You are Gerch, a helpful search assistant. Answer the user's " +
		"question using only the information provided. Keep it short and friendly."
	enrichMaxTokens   = 300
	enrichTemperature = 0.7
)

// Composer turns provider data into the final draft.
type Composer struct {
	llm            domain.Llm
	voice          domain.Voice
	enrichTimeout  time.Duration
	audioTimeout   time.Duration
	enrichSearch   bool
	enrichHandlers bool
}

type ComposerOptions struct {
	EnrichTimeout  time.Duration
	AudioTimeout   time.Duration
	EnrichSearch   bool
	EnrichHandlers bool
}

// NewComposer builds a Composer. llm and voice may be nil, which disables
// enrichment and audio respectively.
func NewComposer(llm domain.Llm, voice domain.Voice, opts ComposerOptions) *Composer {
	return &Composer{
		llm:            llm,
		voice:          voice,
		enrichTimeout:  opts.EnrichTimeout,
		audioTimeout:   opts.AudioTimeout,
		enrichSearch:   opts.EnrichSearch,
		enrichHandlers: opts.EnrichHandlers,
	}
}

// FromAggregate picks exactly one primary text by precedence: calculator,
// dictionary, encyclopedia, first web snippet, AI overview, generic text.
// Calculator and dictionary answers are precise and never rephrased.
func (c *Composer) FromAggregate(ctx context.Context, question string, r domain.AggregatedSearchResult) domain.ResponseDraft {
	text, precise := primaryText(r)
	if !precise && c.enrichSearch {
		text = c.enrich(ctx, question, text)
	}
	payload := r
	return domain.ResponseDraft{Text: text, NeedsData: true, Payload: &payload}
}

// FromHandler keeps the formatter's text unless handler enrichment is on.
func (c *Composer) FromHandler(ctx context.Context, question string, draft domain.ResponseDraft) domain.ResponseDraft {
	if c.enrichHandlers {
		draft.Text = c.enrich(ctx, question, draft.Text)
	}
	return draft
}

func primaryText(r domain.AggregatedSearchResult) (string, bool) {
	switch {
	case r.Calculator != nil:
		return fmt.Sprintf("🧮 %s = %s", r.Calculator.Expression, r.Calculator.Formatted), true
	case r.Dictionary != nil:
		return formatDefinition(*r.Dictionary), true
	case r.Wikipedia != nil:
		return fmt.Sprintf("**%s**\n\n%s", r.Wikipedia.Title, r.Wikipedia.Extract), false
	case len(r.Results) > 0:
		return r.Results[0].Snippet, false
	case r.AIOverview != "":
		return r.AIOverview, false
	default:
		return fmt.Sprintf("Here's what I found for \"%s\".", r.Query), false
	}
}

func formatDefinition(d domain.Definition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 **%s**", d.Word)
	if d.Phonetic != "" {
		fmt.Fprintf(&b, " %s", d.Phonetic)
	}
	for _, m := range d.Meanings {
		fmt.Fprintf(&b, "\n\n*%s*", m.PartOfSpeech)
		for i, def := range m.Definitions {
			fmt.Fprintf(&b, "\n%d. %s", i+1, def)
		}
	}
	return b.String()
}

// enrich rephrases text through the model. Any failure keeps text as is.
func (c *Composer) enrich(ctx context.Context, question, text string) string {
	if c.llm == nil {
		return text
	}
	res := attempt(ctx, "enrich", c.enrichTimeout, func(ctx context.Context) (string, error) {
		out, err := c.llm.Complete(ctx, domain.CompletionRequest{
			System:      enrichPrompt,
			Prompt:      fmt.Sprintf("Question: %s\n\nInformation:\n%s", question, text),
			MaxTokens:   enrichMaxTokens,
			Temperature: enrichTemperature,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrEnrichmentFailed, err)
		}
		if out = strings.TrimSpace(out); out == "" {
			return "", domain.ErrNotFound
		}
		return out, nil
	})
	if !res.Ok() {
		log.WithCtx(ctx).Debug("keeping unenriched text", zap.String("status", res.Status.String()))
		return text
	}
	return res.Value
}

// WithAudio attaches a spoken version of the text when a voice is
// configured. Failure leaves AudioURL empty.
func (c *Composer) WithAudio(ctx context.Context, draft domain.ResponseDraft) domain.ResponseDraft {
	if c.voice == nil || strings.TrimSpace(draft.Text) == "" {
		return draft
	}
	res := attempt(ctx, "voice", c.audioTimeout, func(ctx context.Context) (string, error) {
		return c.voice.Pointer(ctx, draft.Text)
	})
	if res.Ok() {
		draft.AudioURL = res.Value
	}
	return draft
}
