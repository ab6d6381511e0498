package ldcurate

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch returns the HTML body of the URL. A non-200 response is
	// reported as a *StatusError. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// RobotsChecker decides whether a URL may be crawled under robots.txt.
type RobotsChecker interface {
	Allowed(ctx context.Context, url string) (bool, error)
}
