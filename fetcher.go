package jobkorea

import "context"

// Fetcher acquires raw page content for a listing URL.
// Depending on the implementation the content is HTML or markdown.
type Fetcher interface {
	// Fetch retrieves the content of url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (content string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
