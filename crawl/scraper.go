package crawl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/ldcurate"
	"github.com/google/uuid"
)

// Scraper fetches one page, extracts its JSON-LD and scores every block.
// Robots and RateLimiter are optional; a nil Robots allows every URL.
type Scraper struct {
	Fetcher     ldcurate.Fetcher
	Robots      ldcurate.RobotsChecker
	RateLimiter ldcurate.DomainLimiter
	Extractor   ldcurate.Extractor
	Scorer      ldcurate.Scorer
	RetryDelays []time.Duration

	// Retry, if set, is called before every retried fetch.
	Retry LogFunc

	// Now returns the scrape timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Scrape runs robots check, rate limiting, fetch, extraction and scoring
// for one target. Failures are reported in the record, never as an error;
// callers check ctx.Err() to tell cancellation apart.
func (s *Scraper) Scrape(ctx context.Context, target ldcurate.Target) *ldcurate.Record {
	record := &ldcurate.Record{
		ID:        uuid.NewString(),
		URL:       target.URL,
		Category:  target.Category,
		Priority:  target.Priority,
		ScrapedAt: s.now(),
	}

	if s.Robots != nil {
		allowed, err := s.Robots.Allowed(ctx, target.URL)
		if err != nil {
			return failed(record, err)
		}
		if !allowed {
			record.Status = ldcurate.StatusBlocked
			record.RejectionReason = ldcurate.ReasonBlockedByRobots
			return record
		}
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, DomainKey(target.URL)); err != nil {
			return failed(record, err)
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, target.URL, s.Fetcher.Fetch, delays, s.Retry)
	if err != nil {
		return failed(record, err)
	}

	extraction, err := s.Extractor.Extract(html)
	if err != nil {
		record.Status = ldcurate.StatusNoData
		record.RejectionReason = "extract_error: " + err.Error()
		return record
	}
	record.Title = extraction.Title
	record.BlockCount = len(extraction.Blocks)

	if len(extraction.Blocks) == 0 {
		record.Status = ldcurate.StatusNoData
		record.RejectionReason = ldcurate.ReasonNoJSONLD
		return record
	}

	best, result := s.best(extraction.Blocks)

	record.Status = ldcurate.StatusScored
	record.JSONLD = best
	record.Score = result.Score
	record.Passed = result.Passed
	record.Breakdown = result.Breakdown
	record.ValidationDetails = result.ValidationDetails
	record.RejectionReason = result.RejectionReason
	if result.ValidationDetails != nil {
		record.SchemaType = result.ValidationDetails.SchemaType
	}
	if hash, err := HashJSON(best); err == nil {
		record.ContentHash = hash
	}
	return record
}

// best scores every block and returns the highest scoring one.
// The first block wins ties.
func (s *Scraper) best(blocks []any) (any, *ldcurate.ScoreResult) {
	var block any
	var result *ldcurate.ScoreResult
	for _, b := range blocks {
		r := s.Scorer.Score(b)
		if result == nil || r.Score > result.Score {
			block, result = b, r
		}
	}
	return block, result
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// failed marks the record as a fetch failure. HTTP status failures are
// reported as "HTTP <code>", everything else as "fetch_error: <msg>".
func failed(record *ldcurate.Record, err error) *ldcurate.Record {
	record.Status = ldcurate.StatusFailed

	var statusErr *ldcurate.StatusError
	if errors.As(err, &statusErr) {
		record.HTTPStatus = statusErr.StatusCode
		record.RejectionReason = fmt.Sprintf("HTTP %d", statusErr.StatusCode)
		return record
	}
	msg := err.Error()
	if ldcurate.ErrorCode(err) != ldcurate.EINTERNAL {
		msg = ldcurate.ErrorMessage(err)
	}
	record.RejectionReason = "fetch_error: " + msg
	return record
}
