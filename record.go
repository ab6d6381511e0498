package ldcurate

import (
	"context"
	"time"
)

// Target is a URL to scrape, with optional labels carried into its record.
type Target struct {
	URL      string `json:"url" yaml:"url"`
	Category string `json:"category,omitempty" yaml:"category"`
	Priority string `json:"priority,omitempty" yaml:"priority"`
}

// Record status values.
const (
	StatusScored  = "scored"
	StatusBlocked = "blocked"
	StatusFailed  = "fetch_failed"
	StatusNoData  = "no_jsonld"
)

// Scrape rejection reasons that precede scoring.
const (
	ReasonBlockedByRobots = "blocked by robots.txt"
	ReasonNoJSONLD        = "no_jsonld_found"
)

// Record is the outcome of scraping and scoring one URL. It is written as
// one JSON line to the accepted or rejected output file.
type Record struct {
	ID         string `json:"id"`
	RunID      string `json:"run_id,omitempty"`
	URL        string `json:"url"`
	Category   string `json:"category,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Title      string `json:"title,omitempty"`
	Status     string `json:"status"`
	HTTPStatus int    `json:"http_status,omitempty"`

	SchemaType        string             `json:"schema_type,omitempty"`
	Score             float64            `json:"score"`
	Passed            bool               `json:"passed"`
	Breakdown         *ScoreBreakdown    `json:"breakdown,omitempty"`
	ValidationDetails *ValidationDetails `json:"validation_details,omitempty"`
	RejectionReason   string             `json:"rejection_reason,omitempty"`

	// JSONLD is the best-scoring block on the page.
	JSONLD      any    `json:"jsonld,omitempty"`
	BlockCount  int    `json:"jsonld_blocks"`
	ContentHash string `json:"content_hash,omitempty"`
	Tokens      int    `json:"tokens,omitempty"`

	ScrapedAt time.Time `json:"scraped_at"`
}

// Progress reports the completion of one URL during a run.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Record    *Record
}

// ProgressFunc is called as URLs complete.
type ProgressFunc func(Progress)

// RunResult summarizes a scrape-and-score run. Records keep input order.
type RunResult struct {
	RunID      string
	Records    []*Record
	Accepted   int
	Rejected   int
	Duplicates int
	Tokens     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// RecordStore persists records with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type RecordStore interface {
	Save(ctx context.Context, record *Record) error
	Commit() error
	Abort() error
}

// Checkpoint is a snapshot of a run in progress, written periodically so
// an interrupted run leaves its partial results behind.
type Checkpoint struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Processed int       `json:"processed"`
	Total     int       `json:"total"`
	Accepted  int       `json:"accepted"`
	Rejected  int       `json:"rejected"`
	Records   []*Record `json:"records"`
}

// RecordFilter selects indexed records. Nil fields match every record.
type RecordFilter struct {
	RunID      *string
	URL        *string
	SchemaType *string
	Passed     *bool
	MinScore   *float64

	// Restrict result set.
	Offset int
	Limit  int
}

// RecordService queries records indexed across runs.
type RecordService interface {
	// FindRecords returns matching records, highest score first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// FindRecordByID returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)
}
