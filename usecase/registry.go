package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/satriahrh/gerch/domain"
)

// Binding ties a trigger predicate to one provider call and its formatter.
type Binding struct {
	Name   string
	Match  func(lower string) bool
	handle func(ctx context.Context, msg domain.Message) (domain.ResponseDraft, bool)
}

// Bind builds a Binding. extract returning false means the message matched
// the trigger but carries nothing to look up, and the binding is skipped.
func Bind[Q, T any](
	name string,
	match func(lower string) bool,
	extract func(msg domain.Message) (Q, bool),
	invoke func(ctx context.Context, q Q) (T, error),
	format func(q Q, v T) domain.ResponseDraft,
	timeout time.Duration,
) Binding {
	return Binding{
		Name:  name,
		Match: match,
		handle: func(ctx context.Context, msg domain.Message) (domain.ResponseDraft, bool) {
			q, ok := extract(msg)
			if !ok {
				return domain.ResponseDraft{}, false
			}
			res := attempt(ctx, name, timeout, func(ctx context.Context) (T, error) {
				return invoke(ctx, q)
			})
			if !res.Ok() {
				return domain.ResponseDraft{}, false
			}
			return format(q, res.Value), true
		},
	}
}

// Registry holds the bindings in priority order. It is built once and never
// mutated.
type Registry struct {
	bindings []Binding
}

func NewRegistry(bindings ...Binding) *Registry {
	return &Registry{bindings: bindings}
}

// Dispatch evaluates bindings in order and returns the first successful
// draft with the binding's name. Bindings are tried sequentially so overlaps
// resolve by order, never by latency.
func (r *Registry) Dispatch(ctx context.Context, msg domain.Message) (domain.ResponseDraft, string, bool) {
	lower := strings.ToLower(msg.Text)
	for _, b := range r.bindings {
		if !b.Match(lower) {
			continue
		}
		if draft, ok := b.handle(ctx, msg); ok {
			return draft, b.Name, true
		}
	}
	return domain.ResponseDraft{}, "", false
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.bindings))
	for i, b := range r.bindings {
		names[i] = b.Name
	}
	return names
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// triggers returns a Match func over literal substrings.
func triggers(subs ...string) func(string) bool {
	return func(lower string) bool { return containsAny(lower, subs...) }
}
