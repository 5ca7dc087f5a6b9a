package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/satriahrh/gerch/domain"
)

const (
	maxMeanings    = 2
	maxDefinitions = 2
)

// FreeDictionary looks words up on dictionaryapi.dev.
type FreeDictionary struct {
	base
}

func NewFreeDictionary(opts ...Option) *FreeDictionary {
	return &FreeDictionary{base: newBase("https://api.dictionaryapi.dev/api/v2", opts)}
}

type dictionaryEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text string `json:"text"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Define returns the phonetic and up to two definitions for each of the
// first two meanings of word.
func (d *FreeDictionary) Define(ctx context.Context, word string) (domain.Definition, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || strings.ContainsAny(word, " \t") {
		return domain.Definition{}, domain.ErrInvalidInput
	}

	var entries []dictionaryEntry
	if err := d.getJSON(ctx, "/entries/en/"+url.PathEscape(word), nil, &entries); err != nil {
		return domain.Definition{}, err
	}
	if len(entries) == 0 {
		return domain.Definition{}, domain.ErrNotFound
	}

	entry := entries[0]
	def := domain.Definition{Word: entry.Word, Phonetic: entry.Phonetic}
	if def.Phonetic == "" {
		for _, p := range entry.Phonetics {
			if p.Text != "" {
				def.Phonetic = p.Text
				break
			}
		}
	}

	for _, m := range entry.Meanings {
		if len(def.Meanings) == maxMeanings {
			break
		}
		meaning := domain.Meaning{PartOfSpeech: m.PartOfSpeech}
		for _, sense := range m.Definitions {
			if len(meaning.Definitions) == maxDefinitions {
				break
			}
			meaning.Definitions = append(meaning.Definitions, sense.Definition)
		}
		def.Meanings = append(def.Meanings, meaning)
	}
	if len(def.Meanings) == 0 {
		return domain.Definition{}, domain.ErrNotFound
	}
	return def, nil
}
