package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/ldcurate"
)

// FetchFunc fetches the HTML of a URL.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc receives one printf-style line per retry.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff between fetch attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches url, retrying once after each delay while the
// failure is transient. A *ldcurate.StatusError ends the attempts: the
// server answered. The last error is returned when the delays run out.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, log LogFunc) (string, error) {
	html, err := fetch(ctx, url)
	for i, delay := range delays {
		if err == nil || !transient(err) {
			break
		}
		if log != nil {
			log("retry %s in %s (attempt %d of %d): %v", url, delay, i+2, len(delays)+1, err)
		}
		if werr := sleep(ctx, delay); werr != nil {
			return "", werr
		}
		html, err = fetch(ctx, url)
	}
	if err != nil {
		return "", err
	}
	return html, nil
}

func transient(err error) bool {
	var statusErr *ldcurate.StatusError
	return !errors.As(err, &statusErr)
}

// sleep waits for d or until ctx is done, whichever is first.
func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
