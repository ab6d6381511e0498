package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/ldcurate"
	ldhttp "github.com/fwojciec/ldcurate/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRobotsServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	return srv, &hits
}

func TestRobotsChecker_Allowed(t *testing.T) {
	t.Parallel()

	robotsTxt := `User-agent: otherbot
Disallow: /

User-agent: *
Disallow: /private/
Disallow: /search?
`

	t.Run("applies disallow rules", func(t *testing.T) {
		t.Parallel()

		srv, _ := newRobotsServer(t, http.StatusOK, robotsTxt)
		defer srv.Close()

		checker := ldhttp.NewRobotsChecker(srv.Client())
		ctx := context.Background()

		ok, err := checker.Allowed(ctx, srv.URL+"/blog/post")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = checker.Allowed(ctx, srv.URL+"/private/page")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = checker.Allowed(ctx, srv.URL+"/search?q=x")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = checker.Allowed(ctx, srv.URL)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("caches robots.txt per host", func(t *testing.T) {
		t.Parallel()

		srv, hits := newRobotsServer(t, http.StatusOK, robotsTxt)
		defer srv.Close()

		checker := ldhttp.NewRobotsChecker(srv.Client())
		for _, path := range []string{"/a", "/b", "/private/c"} {
			_, err := checker.Allowed(context.Background(), srv.URL+path)
			require.NoError(t, err)
		}

		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("refetches after ttl", func(t *testing.T) {
		t.Parallel()

		srv, hits := newRobotsServer(t, http.StatusOK, robotsTxt)
		defer srv.Close()

		checker := ldhttp.NewRobotsChecker(srv.Client(), ldhttp.WithRobotsTTL(20*time.Millisecond))
		_, err := checker.Allowed(context.Background(), srv.URL+"/a")
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			_, err := checker.Allowed(context.Background(), srv.URL+"/a")
			return err == nil && hits.Load() >= 2
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("allows everything when robots.txt is missing", func(t *testing.T) {
		t.Parallel()

		srv, _ := newRobotsServer(t, http.StatusNotFound, "")
		defer srv.Close()

		ok, err := ldhttp.NewRobotsChecker(srv.Client()).Allowed(context.Background(), srv.URL+"/anything")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("disallows everything on server error", func(t *testing.T) {
		t.Parallel()

		srv, _ := newRobotsServer(t, http.StatusServiceUnavailable, "")
		defer srv.Close()

		ok, err := ldhttp.NewRobotsChecker(srv.Client()).Allowed(context.Background(), srv.URL+"/anything")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("allows when host is unreachable", func(t *testing.T) {
		t.Parallel()

		srv, _ := newRobotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /\n")
		url := srv.URL
		srv.Close()

		ok, err := ldhttp.NewRobotsChecker(nil).Allowed(context.Background(), url+"/page")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("returns context error", func(t *testing.T) {
		t.Parallel()

		srv, _ := newRobotsServer(t, http.StatusOK, robotsTxt)
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ldhttp.NewRobotsChecker(srv.Client()).Allowed(ctx, srv.URL+"/page")

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("canceled caller does not fail shared fetch", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		started := make(chan struct{})
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				close(started)
			}
			<-release
			_, _ = w.Write([]byte(robotsTxt))
		}))
		defer srv.Close()

		checker := ldhttp.NewRobotsChecker(srv.Client())

		ctx, cancel := context.WithCancel(context.Background())
		canceled := make(chan error, 1)
		go func() {
			_, err := checker.Allowed(ctx, srv.URL+"/blog/post")
			canceled <- err
		}()
		<-started

		type answer struct {
			ok  bool
			err error
		}
		waiting := make(chan answer, 1)
		go func() {
			ok, err := checker.Allowed(context.Background(), srv.URL+"/private/page")
			waiting <- answer{ok: ok, err: err}
		}()

		cancel()
		select {
		case err := <-canceled:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("canceled caller did not return")
		}

		close(release)
		select {
		case got := <-waiting:
			require.NoError(t, got.err)
			assert.False(t, got.ok)
		case <-time.After(5 * time.Second):
			t.Fatal("waiting caller did not return")
		}
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("rejects invalid urls", func(t *testing.T) {
		t.Parallel()

		checker := ldhttp.NewRobotsChecker(nil)

		for _, u := range []string{"not a url", "ftp://example.com/file", "http://[::1"} {
			_, err := checker.Allowed(context.Background(), u)
			assert.Equal(t, ldcurate.EINVALID, ldcurate.ErrorCode(err), u)
		}
	})
}
