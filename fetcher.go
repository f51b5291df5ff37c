package kakuyomu

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the document at url and returns its HTML.
	// A transport failure or non-success status is returned as EFETCH.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases underlying resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
