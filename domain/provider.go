package domain

import "context"

// Provider ports. Each call is bounded by ctx. Implementations return
// ErrNotFound when the upstream has nothing for the query and wrap
// ErrProviderUnavailable for transport or status failures.

type ImageGenerator interface {
	GenerateImageURL(prompt string, width, height int) (string, error)
}

type CryptoProvider interface {
	Prices(ctx context.Context, coinIDs []string) ([]CoinPrice, error)
}

type PaperProvider interface {
	SearchPapers(ctx context.Context, query string, max int) ([]Paper, error)
}

type QAProvider interface {
	SearchQuestions(ctx context.Context, query string, max int) ([]Question, error)
}

type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (Weather, error)
}

type CreatureProvider interface {
	Creature(ctx context.Context, name string) (Creature, error)
}

type PetProvider interface {
	// PetImage returns an image URL for kind ("dog" or "cat"), optionally
	// narrowed to a breed.
	PetImage(ctx context.Context, kind, breed string) (string, error)
}

type JokeProvider interface {
	RandomJoke(ctx context.Context) (string, error)
}

type QuoteProvider interface {
	RandomQuote(ctx context.Context) (Quote, error)
}

type IPProvider interface {
	// LookupIP resolves ip; an empty ip looks up the caller's public address.
	LookupIP(ctx context.Context, ip string) (IPInfo, error)
}

type DictionaryProvider interface {
	Define(ctx context.Context, word string) (Definition, error)
}

type WebSearcher interface {
	Search(ctx context.Context, query string, limit int) (WebResults, error)
}

type ImageSearcher interface {
	SearchImages(ctx context.Context, query string, limit int) ([]ImageResult, error)
}

type Encyclopedia interface {
	Summary(ctx context.Context, title string) (Summary, error)
}

type CoinPrice struct {
	ID        string
	USD       float64
	Change24h float64
}

type Paper struct {
	Title     string
	Summary   string
	Published string
	ID        string
}

type Question struct {
	Title       string
	Score       int
	AnswerCount int
	Link        string
}

type Weather struct {
	Temperature float64
	WindSpeed   float64
}

type Creature struct {
	Name   string
	Height float64 // metres
	Weight float64 // kilograms
	Types  []string
	Sprite string
}

type Quote struct {
	Text   string
	Author string
}

type IPInfo struct {
	IP      string
	City    string
	Region  string
	Country string
	Org     string
}
