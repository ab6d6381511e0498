// Package crawl orchestrates the scrape-and-score pipeline and URL
// discovery. It coordinates robots checks, rate limiting, fetching,
// JSON-LD extraction, scoring and storage of records.
package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/ldcurate"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing for sitemap discovery.
const (
	// frontierFalsePositiveRate is the acceptable false positive rate for discovered URLs.
	frontierFalsePositiveRate = 0.001
)

// Default pipeline settings.
const (
	DefaultConcurrency = 4
)

// CheckpointFunc persists a snapshot of a run in progress.
type CheckpointFunc func(ctx context.Context, checkpoint *ldcurate.Checkpoint) error

// Pipeline scrapes and scores a list of targets concurrently.
type Pipeline struct {
	Scraper      *Scraper
	Store        ldcurate.RecordStore
	TokenCounter ldcurate.TokenCounter
	Concurrency  int

	// Checkpoint, if set, is called every CheckpointInterval completed URLs.
	Checkpoint         CheckpointFunc
	CheckpointInterval int
}

// scraped is the outcome of scraping one target.
type scraped struct {
	position int
	record   *ldcurate.Record
}

// Run scrapes every target and returns the records in input order.
// Duplicate URLs are dropped before scraping. Records are saved to Store,
// when set, after all targets complete. The progress callback, if provided,
// is called once per completed URL.
func (p *Pipeline) Run(ctx context.Context, targets []ldcurate.Target, progress ldcurate.ProgressFunc) (*ldcurate.RunResult, error) {
	result := &ldcurate.RunResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	unique := p.dedupe(targets)
	result.Duplicates = len(targets) - len(unique)

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resultCh := make(chan scraped, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, target := range unique {
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				record := p.Scraper.Scrape(gctx, target)
				record.RunID = result.RunID
				resultCh <- scraped{position: i, record: record}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var (
		records       = make([]*ldcurate.Record, len(unique))
		completed     []*ldcurate.Record
		accepted      int
		checkpointErr error
	)
	total := len(unique)
	for s := range resultCh {
		records[s.position] = s.record
		completed = append(completed, s.record)
		if s.record.Passed {
			accepted++
		}

		if progress != nil {
			progress(ldcurate.Progress{
				URL:       s.record.URL,
				Completed: len(completed),
				Total:     total,
				Record:    s.record,
			})
		}

		if p.Checkpoint != nil && p.CheckpointInterval > 0 && len(completed)%p.CheckpointInterval == 0 && checkpointErr == nil {
			if err := p.Checkpoint(ctx, &ldcurate.Checkpoint{
				RunID:     result.RunID,
				Timestamp: time.Now().UTC(),
				Processed: len(completed),
				Total:     total,
				Accepted:  accepted,
				Rejected:  len(completed) - accepted,
				Records:   append([]*ldcurate.Record(nil), completed...),
			}); err != nil {
				checkpointErr = fmt.Errorf("checkpoint: %w", err)
				cancel()
			}
		}
	}

	if checkpointErr != nil {
		return nil, checkpointErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, record := range records {
		if record.Passed {
			result.Accepted++
			if p.TokenCounter != nil {
				record.Tokens = p.countTokens(ctx, record.JSONLD)
				result.Tokens += record.Tokens
			}
		} else {
			result.Rejected++
		}
		if p.Store != nil {
			if err := p.Store.Save(ctx, record); err != nil {
				return nil, fmt.Errorf("save record %s: %w", record.URL, err)
			}
		}
	}

	result.Records = records
	result.FinishedAt = time.Now().UTC()
	return result, nil
}

// dedupe drops targets whose URL (ignoring fragments) appeared earlier.
// Every distinct URL is kept.
func (p *Pipeline) dedupe(targets []ldcurate.Target) []ldcurate.Target {
	seen := make(map[string]struct{}, len(targets))
	unique := make([]ldcurate.Target, 0, len(targets))
	for _, t := range targets {
		key := stripFragment(t.URL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, t)
	}
	return unique
}

func (p *Pipeline) countTokens(ctx context.Context, jsonld any) int {
	data, err := json.Marshal(jsonld)
	if err != nil {
		return 0
	}
	tokens, err := p.TokenCounter.CountTokens(ctx, string(data))
	if err != nil {
		return 0
	}
	return tokens
}
