package usecase

import (
	"context"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/satriahrh/gerch/domain"
)

// Providers are the clients behind the specialized bindings. A nil provider
// leaves its binding out of the registry.
type Providers struct {
	Images   domain.ImageGenerator
	Crypto   domain.CryptoProvider
	Papers   domain.PaperProvider
	QA       domain.QAProvider
	Weather  domain.WeatherProvider
	Creature domain.CreatureProvider
	Pets     domain.PetProvider
	Jokes    domain.JokeProvider
	Quotes   domain.QuoteProvider
	IP       domain.IPProvider
}

const (
	generatedImageSize = 512
	maxListItems       = 5
)

var (
	imageTriggers    = []string{"generate an image", "generate image", "create an image", "create image", "draw ", "make an image", "generate a picture", "create a picture", "paint"}
	cryptoTriggers   = []string{"crypto", "bitcoin", "ethereum", "dogecoin", "solana", "cardano", "litecoin", "btc", "coin price"}
	paperTriggers    = []string{"research paper", "papers on", "papers about", "arxiv", "academic", "scientific paper"}
	qaTriggers       = []string{"stack overflow", "stackoverflow", "programming question", "how to code", "coding question"}
	weatherTriggers  = []string{"weather", "temperature", "forecast"}
	creatureTriggers = []string{"pokemon", "pokémon"}
	petTriggers      = []string{"dog", "puppy", "cat", "kitten"}
	jokeTriggers     = []string{"joke", "chuck norris"}
	quoteTriggers    = []string{"quote", "inspiration", "motivat"}
	ipTriggers       = []string{"my ip", "ip address", "ip info", "what is my ip", "ip lookup"}
)

// DefaultBindings returns the specialized bindings in priority order: image
// generation, crypto, papers, Q&A, weather, creature, pet, joke, quote, IP.
func DefaultBindings(p Providers, timeout time.Duration) []Binding {
	var bindings []Binding

	if p.Images != nil {
		bindings = append(bindings, Bind("image", triggers(imageTriggers...),
			extractImagePrompt,
			func(_ context.Context, prompt string) (string, error) {
				return p.Images.GenerateImageURL(prompt, generatedImageSize, generatedImageSize)
			},
			formatGeneratedImage, timeout))
	}
	if p.Crypto != nil {
		bindings = append(bindings, Bind("crypto", triggers(cryptoTriggers...),
			extractCoins, p.Crypto.Prices, formatPrices, timeout))
	}
	if p.Papers != nil {
		bindings = append(bindings, Bind("papers", triggers(paperTriggers...),
			extractPaperQuery,
			func(ctx context.Context, q string) ([]domain.Paper, error) {
				return p.Papers.SearchPapers(ctx, q, maxListItems)
			},
			formatPapers, timeout))
	}
	if p.QA != nil {
		bindings = append(bindings, Bind("qa", triggers(qaTriggers...),
			extractQuestionQuery,
			func(ctx context.Context, q string) ([]domain.Question, error) {
				return p.QA.SearchQuestions(ctx, q, maxListItems)
			},
			formatQuestions, timeout))
	}
	if p.Weather != nil {
		bindings = append(bindings, Bind("weather", triggers(weatherTriggers...),
			extractCity,
			func(ctx context.Context, c city) (domain.Weather, error) {
				return p.Weather.CurrentWeather(ctx, c.Lat, c.Lon)
			},
			formatWeather, timeout))
	}
	if p.Creature != nil {
		bindings = append(bindings, Bind("creature", triggers(creatureTriggers...),
			extractCreatureName, p.Creature.Creature, formatCreature, timeout))
	}
	if p.Pets != nil {
		bindings = append(bindings, Bind("pet", triggers(petTriggers...),
			extractPet,
			func(ctx context.Context, q petQuery) (string, error) {
				return p.Pets.PetImage(ctx, q.Kind, q.Breed)
			},
			formatPet, timeout))
	}
	if p.Jokes != nil {
		bindings = append(bindings, Bind("joke", triggers(jokeTriggers...),
			noQuery,
			func(ctx context.Context, _ struct{}) (string, error) { return p.Jokes.RandomJoke(ctx) },
			formatJoke, timeout))
	}
	if p.Quotes != nil {
		bindings = append(bindings, Bind("quote", triggers(quoteTriggers...),
			noQuery,
			func(ctx context.Context, _ struct{}) (domain.Quote, error) { return p.Quotes.RandomQuote(ctx) },
			formatQuote, timeout))
	}
	if p.IP != nil {
		bindings = append(bindings, Bind("ip", triggers(ipTriggers...),
			extractIP, p.IP.LookupIP, formatIP, timeout))
	}

	return bindings
}

func noQuery(domain.Message) (struct{}, bool) { return struct{}{}, true }

var (
	imageStrip    = phraseRegexp(append(imageTriggers, "images", "image", "picture"))
	paperStrip    = phraseRegexp(append(paperTriggers, "research papers", "scientific papers", "academic papers", "papers", "paper"))
	questionStrip = phraseRegexp(append(qaTriggers, "programming questions", "coding questions", "questions", "question"))
	creatureStrip = phraseRegexp(creatureTriggers)

	imageFillers = wordSet("of", "a", "an", "me")
	queryFillers = wordSet("find", "search", "show", "get", "give", "me", "some", "any", "the", "a", "an", "of", "on", "about", "for", "recent", "latest", "in", "please")
	// Creature names are single words, so anything conversational around
	// them is filler.
	creatureFillers = wordSet("tell", "me", "about", "what", "whats", "what's", "is", "who", "the", "a", "an", "show", "info", "information", "on", "stats", "for", "of", "search", "find", "look", "up", "pokedex", "give", "get", "please")
)

// phraseRegexp matches any of phrases as whole words, case-insensitively.
func phraseRegexp(phrases []string) *regexp.Regexp {
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		quoted = append(quoted, regexp.QuoteMeta(strings.TrimSpace(p)))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

const wordPunct = " ?!.,:;\"'()"

// residual strips phrases from text, then drops leading filler words.
func residual(text string, strip *regexp.Regexp, fillers map[string]bool) string {
	words := strings.Fields(strip.ReplaceAllString(text, " "))
	for len(words) > 0 {
		if w := strings.ToLower(strings.Trim(words[0], wordPunct)); w != "" && !fillers[w] {
			break
		}
		words = words[1:]
	}
	return strings.Trim(strings.Join(words, " "), wordPunct)
}

func extractImagePrompt(msg domain.Message) (string, bool) {
	prompt := residual(msg.Text, imageStrip, imageFillers)
	return prompt, prompt != ""
}

func extractPaperQuery(msg domain.Message) (string, bool) {
	q := residual(msg.Text, paperStrip, queryFillers)
	return q, q != ""
}

func extractQuestionQuery(msg domain.Message) (string, bool) {
	q := residual(msg.Text, questionStrip, queryFillers)
	return q, q != ""
}

func extractCreatureName(msg domain.Message) (string, bool) {
	words := strings.Fields(strings.ToLower(creatureStrip.ReplaceAllString(msg.Text, " ")))
	for _, w := range words {
		w = strings.Trim(w, wordPunct)
		if w != "" && !creatureFillers[w] {
			return w, true
		}
	}
	return "", false
}

type coin struct {
	ID      string
	Name    string
	Aliases []string
}

var knownCoins = []coin{
	{"bitcoin", "Bitcoin", []string{"bitcoin", "btc"}},
	{"ethereum", "Ethereum", []string{"ethereum", "eth"}},
	{"dogecoin", "Dogecoin", []string{"dogecoin", "doge"}},
	{"solana", "Solana", []string{"solana", "sol"}},
	{"cardano", "Cardano", []string{"cardano", "ada"}},
	{"litecoin", "Litecoin", []string{"litecoin", "ltc"}},
	{"ripple", "XRP", []string{"ripple", "xrp"}},
	{"polkadot", "Polkadot", []string{"polkadot"}},
}

var defaultCoins = []string{"bitcoin", "ethereum"}

func extractCoins(msg domain.Message) ([]string, bool) {
	words := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(msg.Text)) {
		words[strings.Trim(w, wordPunct)] = true
	}

	var ids []string
	for _, c := range knownCoins {
		for _, alias := range c.Aliases {
			if words[alias] {
				ids = append(ids, c.ID)
				break
			}
		}
	}
	if len(ids) == 0 {
		ids = defaultCoins
	}
	return ids, true
}

func coinName(id string) string {
	for _, c := range knownCoins {
		if c.ID == id {
			return c.Name
		}
	}
	return titleWord(id)
}

type city struct {
	Name     string
	Lat, Lon float64
}

var knownCities = []city{
	{"New York", 40.7128, -74.0060},
	{"London", 51.5074, -0.1278},
	{"Paris", 48.8566, 2.3522},
	{"Tokyo", 35.6762, 139.6503},
	{"Sydney", -33.8688, 151.2093},
	{"Berlin", 52.5200, 13.4050},
	{"Los Angeles", 34.0522, -118.2437},
	{"San Francisco", 37.7749, -122.4194},
	{"Chicago", 41.8781, -87.6298},
	{"Toronto", 43.6532, -79.3832},
	{"Moscow", 55.7558, 37.6173},
	{"Dubai", 25.2048, 55.2708},
	{"Singapore", 1.3521, 103.8198},
	{"Mumbai", 19.0760, 72.8777},
	{"Jakarta", -6.2088, 106.8456},
}

func extractCity(msg domain.Message) (city, bool) {
	lower := strings.ToLower(msg.Text)
	for _, c := range knownCities {
		if strings.Contains(lower, strings.ToLower(c.Name)) {
			return c, true
		}
	}
	return knownCities[0], true
}

type petQuery struct {
	Kind  string
	Breed string
}

// dogBreeds are Dog CEO breed ids that can be requested directly.
var dogBreeds = []string{"labrador", "husky", "beagle", "poodle", "pug", "corgi", "boxer", "dalmatian", "chihuahua", "pomeranian", "akita", "shiba", "bulldog", "rottweiler", "samoyed", "doberman"}

func extractPet(msg domain.Message) (petQuery, bool) {
	lower := strings.ToLower(msg.Text)
	if !containsAny(lower, "dog", "puppy") {
		return petQuery{Kind: "cat"}, true
	}
	q := petQuery{Kind: "dog"}
	for _, b := range dogBreeds {
		if strings.Contains(lower, b) {
			q.Breed = b
			break
		}
	}
	return q, true
}

// extractIP returns the first IP address in the message, or "" to look up
// the caller.
func extractIP(msg domain.Message) (string, bool) {
	for _, w := range strings.Fields(msg.Text) {
		w = strings.TrimRight(strings.Trim(w, "?!,;\"'()"), ".")
		if net.ParseIP(w) != nil {
			return w, true
		}
	}
	return "", true
}
