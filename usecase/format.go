package usecase

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/satriahrh/gerch/domain"
)

var usd = message.NewPrinter(language.English)

// formatUSD renders v as "$43,210.12".
func formatUSD(v float64) string {
	return usd.Sprintf("$%.2f", v)
}

func titleWord(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// clipText shortens s to n runes, marking the cut with "...".
func clipText(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}

func dataDraft(text string, payload *domain.AggregatedSearchResult) domain.ResponseDraft {
	return domain.ResponseDraft{Text: text, NeedsData: true, Payload: payload}
}

func imagePayload(query string, images ...domain.ImageResult) *domain.AggregatedSearchResult {
	return &domain.AggregatedSearchResult{Query: query, Results: []domain.WebResult{}, Images: images}
}

func formatGeneratedImage(prompt, url string) domain.ResponseDraft {
	return dataDraft(
		fmt.Sprintf("🎨 Here's your generated image of \"%s\"!", prompt),
		imagePayload(prompt, domain.ImageResult{
			Title:     prompt,
			URL:       url,
			Thumbnail: url,
			Source:    "Pollinations.AI",
			Width:     generatedImageSize,
			Height:    generatedImageSize,
		}),
	)
}

func formatPrices(_ []string, prices []domain.CoinPrice) domain.ResponseDraft {
	var b strings.Builder
	b.WriteString("💰 **Cryptocurrency Prices:**\n")
	for _, p := range prices {
		fmt.Fprintf(&b, "\n• %s: %s (%+.2f%% 24h)", coinName(p.ID), formatUSD(p.USD), p.Change24h)
	}
	return dataDraft(b.String(), nil)
}

func formatPapers(_ string, papers []domain.Paper) domain.ResponseDraft {
	var b strings.Builder
	b.WriteString("📚 **Research Papers:**\n")
	for i, p := range papers {
		fmt.Fprintf(&b, "\n%d. **%s**", i+1, p.Title)
		if len(p.Published) >= 10 {
			fmt.Fprintf(&b, " (%s)", p.Published[:10])
		}
		if p.Summary != "" {
			fmt.Fprintf(&b, "\n   %s", clipText(p.Summary, 200))
		}
		if p.ID != "" {
			fmt.Fprintf(&b, "\n   %s", p.ID)
		}
		b.WriteString("\n")
	}
	return dataDraft(strings.TrimRight(b.String(), "\n"), nil)
}

func formatQuestions(_ string, questions []domain.Question) domain.ResponseDraft {
	var b strings.Builder
	b.WriteString("💻 **Programming Questions:**\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "\n%d. **%s**\n   Score: %d | Answers: %d", i+1, q.Title, q.Score, q.AnswerCount)
		if q.Link != "" {
			fmt.Fprintf(&b, "\n   %s", q.Link)
		}
		b.WriteString("\n")
	}
	return dataDraft(strings.TrimRight(b.String(), "\n"), nil)
}

func formatWeather(c city, w domain.Weather) domain.ResponseDraft {
	return dataDraft(fmt.Sprintf("🌤️ **Weather in %s:**\n\nTemperature: %.1f°C\nWind Speed: %.1f km/h",
		c.Name, w.Temperature, w.WindSpeed), nil)
}

func formatCreature(name string, c domain.Creature) domain.ResponseDraft {
	display := titleWord(c.Name)
	if display == "" {
		display = titleWord(name)
	}
	types := make([]string, len(c.Types))
	for i, t := range c.Types {
		types[i] = titleWord(t)
	}

	text := fmt.Sprintf("⚡ **%s**\n\nHeight: %.1f m\nWeight: %.1f kg\nTypes: %s",
		display, c.Height, c.Weight, strings.Join(types, ", "))

	var payload *domain.AggregatedSearchResult
	if c.Sprite != "" {
		payload = imagePayload(name, domain.ImageResult{Title: display, URL: c.Sprite, Thumbnail: c.Sprite, Source: "PokéAPI"})
	}
	return dataDraft(text, payload)
}

func formatPet(q petQuery, url string) domain.ResponseDraft {
	text, source := "🐶 Here's a cute dog for you!", "dog.ceo"
	if q.Kind == "cat" {
		text, source = "🐱 Here's a cute cat for you!", "thecatapi.com"
	} else if q.Breed != "" {
		text = fmt.Sprintf("🐶 Here's a cute %s for you!", q.Breed)
	}
	return dataDraft(text, imagePayload(q.Kind, domain.ImageResult{Title: q.Kind, URL: url, Thumbnail: url, Source: source}))
}

func formatJoke(_ struct{}, joke string) domain.ResponseDraft {
	return dataDraft("😄 "+joke, nil)
}

func formatQuote(_ struct{}, q domain.Quote) domain.ResponseDraft {
	return dataDraft(fmt.Sprintf("\"%s\"\n\n— %s", q.Text, q.Author), nil)
}

func formatIP(_ string, info domain.IPInfo) domain.ResponseDraft {
	var location []string
	for _, part := range []string{info.City, info.Region, info.Country} {
		if part != "" {
			location = append(location, part)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌐 **IP Information:**\n\nIP: %s", info.IP)
	if len(location) > 0 {
		fmt.Fprintf(&b, "\nLocation: %s", strings.Join(location, ", "))
	}
	if info.Org != "" {
		fmt.Fprintf(&b, "\nOrganization: %s", info.Org)
	}
	return dataDraft(b.String(), nil)
}
