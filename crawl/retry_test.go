package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, []time.Duration{0, 0}, nil)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transport errors", func(t *testing.T) {
		t.Parallel()

		var calls int
		var logged []string
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		}
		logger := func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		}

		html, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, []time.Duration{0, 0, 0}, logger)

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
		require.Len(t, logged, 2)
		assert.Contains(t, logged[0], "attempt 2 of 4")
	})

	t.Run("returns last error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", fmt.Errorf("failure %d", calls)
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, []time.Duration{0, 0}, nil)

		require.Error(t, err)
		assert.Equal(t, "failure 3", err.Error())
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry status errors", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", &ldcurate.StatusError{URL: url, StatusCode: 404}
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, []time.Duration{0, 0}, nil)

		var statusErr *ldcurate.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 404, statusErr.StatusCode)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", errors.New("timeout")
		}

		_, err := crawl.FetchWithRetry(ctx, "https://example.com", fetch, []time.Duration{time.Hour}, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("no delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", errors.New("boom")
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
