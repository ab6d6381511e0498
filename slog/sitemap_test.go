package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/mock"
	ldslog "github.com/fwojciec/ldcurate/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("logs discovery with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) ([]string, error) {
				return []string{"https://example.com/a", "https://example.com/b"}, nil
			},
		}

		svc := ldslog.NewLoggingSitemapService(inner, logger)
		urls, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		output := buf.String()
		assert.Contains(t, output, "sitemap discovery")
		assert.Contains(t, output, "url=https://example.com")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) ([]string, error) {
				return nil, errors.New("connection failed")
			},
		}

		svc := ldslog.NewLoggingSitemapService(inner, logger)
		_, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "sitemap discovery")
		assert.Contains(t, output, "err=\"connection failed\"")
	})
}

func TestLoggingSitemapService_DiscoverEntries(t *testing.T) {
	t.Parallel()

	t.Run("logs entry count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverEntriesFn: func(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) ([]ldcurate.SitemapEntry, error) {
				return []ldcurate.SitemapEntry{
					{URL: "https://example.com/faq", Priority: 0.8},
					{URL: "https://example.com/blog", Priority: 0.5},
					{URL: "https://example.com/shop", Priority: 0.3},
				}, nil
			},
		}

		svc := ldslog.NewLoggingSitemapService(inner, logger)
		entries, err := svc.DiscoverEntries(context.Background(), "https://example.com", nil)

		require.NoError(t, err)
		assert.Len(t, entries, 3)
		output := buf.String()
		assert.Contains(t, output, "sitemap discovery")
		assert.Contains(t, output, "count=3")
		assert.Contains(t, output, "err=<nil>")
	})
}
