package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/crawl"
	"github.com/fwojciec/ldcurate/fs"
	"github.com/fwojciec/ldcurate/report"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	targets, err := fs.LoadTargets(c.URLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldcurate.ErrorMessage(err))
		return err
	}

	outDir := c.Out
	if outDir == "" {
		outDir = deps.Config.Output.Dir
	}
	name := c.Name
	if name == "" {
		name = "run-" + time.Now().UTC().Format("20060102-150405")
	}
	runDir := fs.NewRecordStore(outDir, name)
	var store ldcurate.RecordStore = runDir
	if deps.Index != nil {
		store = &teeStore{primary: runDir, index: deps.Index}
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = deps.Config.Scrape.Concurrency
	}

	pipeline := &crawl.Pipeline{
		Scraper:            deps.Scraper,
		Store:              store,
		TokenCounter:       deps.TokenCounter,
		Concurrency:        concurrency,
		Checkpoint:         runDir.Checkpoint,
		CheckpointInterval: deps.Config.Output.CheckpointInterval,
	}

	fmt.Fprintf(deps.Stdout, "Loaded %d URLs\n", len(targets))
	progress := func(p ldcurate.Progress) {
		verdict := "rejected"
		if p.Record.Passed {
			verdict = "accepted"
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s %s %.1f\n",
			p.Completed, p.Total, verdict, crawl.TruncateURL(p.URL, 80), p.Record.Score)
	}

	result, err := pipeline.Run(deps.Ctx, targets, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: run interrupted: %v\n", err)
		if deps.Index != nil {
			_ = deps.Index.Abort()
		}
		if cp, cerr := fs.ReadCheckpoint(runDir.TempDir()); cerr == nil {
			fmt.Fprintf(deps.Stderr, "checkpoint with %d of %d URLs kept in %s\n", cp.Processed, cp.Total, runDir.TempDir())
		}
		return err
	}
	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	summary := report.Summarize(result.Records, deps.Config.Scoring.Threshold)
	summary.StartedAt = result.StartedAt
	summary.FinishedAt = result.FinishedAt
	summary.Tokens = result.Tokens

	if err := writeReport(filepath.Join(runDir.Dir(), report.MarkdownFile), summary, report.Markdown); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if err := writeReport(filepath.Join(runDir.Dir(), report.JSONFile), summary, report.JSON); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintln(deps.Stdout, RenderSummary(summary, result.Duplicates, runDir.Dir()))
	return nil
}

func writeReport(path string, s *ldcurate.Summary, render func(io.Writer, *ldcurate.Summary) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render(f, s)
}

// teeStore saves every record to the run directory and the index. The run
// directory is committed first; it is the dataset of record.
type teeStore struct {
	primary ldcurate.RecordStore
	index   ldcurate.RecordStore
}

func (s *teeStore) Save(ctx context.Context, record *ldcurate.Record) error {
	if err := s.primary.Save(ctx, record); err != nil {
		return err
	}
	if err := s.index.Save(ctx, record); err != nil {
		return fmt.Errorf("index record: %w", err)
	}
	return nil
}

func (s *teeStore) Commit() error {
	if err := s.primary.Commit(); err != nil {
		_ = s.index.Abort()
		return err
	}
	if err := s.index.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

func (s *teeStore) Abort() error {
	return errors.Join(s.primary.Abort(), s.index.Abort())
}
