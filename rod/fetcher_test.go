//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ldcurate.Fetcher = (*rod.Fetcher)(nil)

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newFetcher(t *testing.T, opts ...rod.FetcherOption) *rod.Fetcher {
	t.Helper()
	fetcher, err := rod.NewFetcher(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { fetcher.Close() })
	return fetcher
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the DOM after scripts run", func(t *testing.T) {
		t.Parallel()

		srv := serveHTML(t, `<!DOCTYPE html><html><head><title>Recipe</title></head><body>
<div id="status">pending</div>
<script>document.getElementById('status').textContent = 'hydrated';</script>
</body></html>`)

		html, err := newFetcher(t).Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "hydrated")
		assert.NotContains(t, html, ">pending<")
	})

	t.Run("keeps JSON-LD injected by scripts", func(t *testing.T) {
		t.Parallel()

		srv := serveHTML(t, `<!DOCTYPE html><html><head><title>Injected</title></head><body>
<script>
const s = document.createElement('script');
s.type = 'application/ld+json';
s.textContent = JSON.stringify({"@context": "https://schema.org", "@type": "Recipe", "name": "Late Soup"});
document.head.appendChild(s);
</script>
</body></html>`)

		html, err := newFetcher(t).Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		// Once in the inline script source, once in the injected block.
		assert.Equal(t, 2, strings.Count(html, "Late Soup"))
		assert.Contains(t, html, `type="application/ld+json"`)
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		agents := make(chan string, 4)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case agents <- r.UserAgent():
			default:
			}
			_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
		}))
		t.Cleanup(srv.Close)

		_, err := newFetcher(t, rod.WithUserAgent("ldcurate-test/1.0")).Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "ldcurate-test/1.0", <-agents)
	})

	t.Run("times out slow pages", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte(`<html><body>late</body></html>`))
		}))
		t.Cleanup(srv.Close)

		_, err := newFetcher(t, rod.WithFetchTimeout(100*time.Millisecond)).Fetch(context.Background(), srv.URL)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("honors a canceled context", func(t *testing.T) {
		t.Parallel()

		srv := serveHTML(t, `<html><body>never read</body></html>`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newFetcher(t).Fetch(ctx, srv.URL)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("recycles the browser between pages", func(t *testing.T) {
		t.Parallel()

		srv := serveHTML(t, `<html><body>page</body></html>`)
		fetcher := newFetcher(t, rod.WithRecycleAfter(1))

		first := fetcher.LauncherPID()
		for range 2 {
			_, err := fetcher.Fetch(context.Background(), srv.URL)
			require.NoError(t, err)
		}

		assert.NotEqual(t, first, fetcher.LauncherPID())
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "http://example.com")
	assert.Equal(t, ldcurate.EINVALID, ldcurate.ErrorCode(err))
	assert.Contains(t, ldcurate.ErrorMessage(err), "closed")
}
