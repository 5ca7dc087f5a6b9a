package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/satriahrh/gerch/utils/calc"
)

var (
	searchVerbs = []string{
		"search", "find", "look up", "what is", "who is", "define", "meaning of",
		"tell me about", "news", "latest", "calculate", "how much", "how many",
		"where is", "when did", "when was", "picture of", "image of", "photos of",
	}
	dataNouns = []string{
		"price", "weather", "wikipedia", "definition", "population", "capital of", "recipe",
	}
)

// NeedsData reports whether text asks for external data rather than
// conversation: a keyword hit, a single word longer than three letters, or
// an arithmetic expression.
func NeedsData(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	if hasDataKeyword(lower) {
		return true
	}
	if words := strings.Fields(lower); len(words) == 1 && utf8.RuneCountInString(words[0]) > 3 {
		return true
	}
	return calc.IsExpression(lower)
}

func hasDataKeyword(lower string) bool {
	return containsAny(lower, searchVerbs...) || containsAny(lower, dataNouns...)
}
