package ldcurate

import "context"

// URLFrontier is a priority queue of discovery candidates with deduplication.
type URLFrontier interface {
	// Push adds a candidate. Returns false if its URL was already seen.
	Push(c Candidate) bool

	// Pop returns the highest pre-scored candidate.
	// Returns false if the frontier is empty.
	Pop() (Candidate, bool)

	// Len returns the number of queued candidates.
	Len() int

	// Seen returns true if the URL has been queued before.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
