package mock

import (
	"context"

	"github.com/fwojciec/ldcurate"
)

var _ ldcurate.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of ldcurate.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ ldcurate.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker is a mock implementation of ldcurate.RobotsChecker.
type RobotsChecker struct {
	AllowedFn func(ctx context.Context, url string) (bool, error)
}

func (r *RobotsChecker) Allowed(ctx context.Context, url string) (bool, error) {
	return r.AllowedFn(ctx, url)
}
