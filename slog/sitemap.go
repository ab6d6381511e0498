package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ldcurate"
)

// Ensure LoggingSitemapService implements ldcurate.SitemapService.
var _ ldcurate.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   ldcurate.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next ldcurate.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}

// DiscoverEntries delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverEntries(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) (entries []ldcurate.SitemapEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverEntries(ctx, baseURL, filter)
}
