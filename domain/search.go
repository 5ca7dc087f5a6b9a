package domain

// AggregatedSearchResult is the merged output of the generic search path.
// Every field except Query is independently optional.
type AggregatedSearchResult struct {
	Query        string            `json:"query"`
	Calculator   *CalculatorResult `json:"calculator,omitempty"`
	Dictionary   *Definition       `json:"dictionary,omitempty"`
	Results      []WebResult       `json:"results"`
	Images       []ImageResult     `json:"images"`
	Wikipedia    *Summary          `json:"wikipedia,omitempty"`
	AIOverview   string            `json:"ai_overview,omitempty"`
	TotalResults string            `json:"total_results,omitempty"`
	SearchTime   float64           `json:"search_time,omitempty"`
}

// Empty reports whether no branch produced anything.
func (r AggregatedSearchResult) Empty() bool {
	return r.Calculator == nil &&
		r.Dictionary == nil &&
		len(r.Results) == 0 &&
		len(r.Images) == 0 &&
		r.Wikipedia == nil &&
		r.AIOverview == ""
}

type CalculatorResult struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
	Formatted  string  `json:"formatted"`
}

type Definition struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic,omitempty"`
	Meanings []Meaning `json:"meanings"`
}

type Meaning struct {
	PartOfSpeech string   `json:"part_of_speech"`
	Definitions  []string `json:"definitions"`
}

type WebResult struct {
	Title         string `json:"title"`
	Link          string `json:"link"`
	Snippet       string `json:"snippet"`
	Position      int    `json:"position"`
	DisplayedLink string `json:"displayed_link"`
}

// WebResults is a ranked page of web results.
type WebResults struct {
	Results      []WebResult
	TotalResults string
	SearchTime   float64
}

type ImageResult struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Source    string `json:"source,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

type Summary struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	URL       string `json:"url,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}
