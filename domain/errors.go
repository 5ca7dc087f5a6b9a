package domain

import "errors"

var (
	// ErrProviderUnavailable covers network failures, timeouts and non-2xx
	// replies from any external call.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrNotFound means the provider answered but had nothing for the query.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput covers empty extracted queries and malformed input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoMatch means no handler or provider produced data.
	ErrNoMatch = errors.New("no match")
	// ErrEnrichmentFailed means the model could not embellish a response
	// that was already valid.
	ErrEnrichmentFailed = errors.New("enrichment failed")
)
