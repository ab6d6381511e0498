package mock

import (
	"context"

	"github.com/fwojciec/ldcurate"
)

var _ ldcurate.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of ldcurate.URLFrontier.
type URLFrontier struct {
	PushFn func(c ldcurate.Candidate) bool
	PopFn  func() (ldcurate.Candidate, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(c ldcurate.Candidate) bool {
	return f.PushFn(c)
}

func (f *URLFrontier) Pop() (ldcurate.Candidate, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ ldcurate.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of ldcurate.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
