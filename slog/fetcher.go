// Package slog provides logging decorators for ldcurate services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ldcurate"
)

// Ensure LoggingFetcher implements ldcurate.Fetcher.
var _ ldcurate.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   ldcurate.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next ldcurate.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingRobotsChecker implements ldcurate.RobotsChecker.
var _ ldcurate.RobotsChecker = (*LoggingRobotsChecker)(nil)

// LoggingRobotsChecker wraps a RobotsChecker with debug logging.
type LoggingRobotsChecker struct {
	next   ldcurate.RobotsChecker
	logger *slog.Logger
}

// NewLoggingRobotsChecker creates a new LoggingRobotsChecker.
func NewLoggingRobotsChecker(next ldcurate.RobotsChecker, logger *slog.Logger) *LoggingRobotsChecker {
	return &LoggingRobotsChecker{next: next, logger: logger}
}

// Allowed delegates to the wrapped checker and logs the decision.
func (r *LoggingRobotsChecker) Allowed(ctx context.Context, url string) (allowed bool, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("robots",
			"url", url,
			"allowed", allowed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Allowed(ctx, url)
}
