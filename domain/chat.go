package domain

// Message is one inbound chat turn.
type Message struct {
	Text    string
	History []ChatMessage
}

// ResponseDraft is the composed answer to a Message.
type ResponseDraft struct {
	Text      string
	NeedsData bool
	Payload   *AggregatedSearchResult
	AudioURL  string
}
