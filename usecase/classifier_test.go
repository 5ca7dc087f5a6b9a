package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsData(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"search for golang generics", true},
		{"What is the capital of France?", true},
		{"population of tokyo", true},
		{"serendipity", true},
		{"hello", true},
		{"hi", false},
		{"cat", false},
		{"2 + 3 * 4", true},
		{"(1+2)^3", true},
		{"42", false},
		{"how was your day", false},
		{"tell me a detailed history of the Roman Empire", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NeedsData(tt.text), tt.text)
	}
}
