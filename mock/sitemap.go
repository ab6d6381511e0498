package mock

import (
	"context"

	"github.com/fwojciec/ldcurate"
)

var _ ldcurate.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of ldcurate.SitemapService.
type SitemapService struct {
	DiscoverURLsFn    func(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) ([]string, error)
	DiscoverEntriesFn func(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) ([]ldcurate.SitemapEntry, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

func (s *SitemapService) DiscoverEntries(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) ([]ldcurate.SitemapEntry, error) {
	return s.DiscoverEntriesFn(ctx, baseURL, filter)
}
