package ldcurate

import "time"

// Summary aggregates the records of a run for reporting.
type Summary struct {
	StartedAt  time.Time `json:"start_time"`
	FinishedAt time.Time `json:"end_time"`
	Threshold  float64   `json:"threshold"`

	Total          int     `json:"total_urls"`
	Accepted       int     `json:"accepted_count"`
	Rejected       int     `json:"rejected_count"`
	AcceptanceRate float64 `json:"acceptance_rate"`
	Tokens         int     `json:"tokens,omitempty"`

	// Scores describes the scores of accepted records.
	Scores      ScoreStats  `json:"scores"`
	ScoreRanges ScoreRanges `json:"score_ranges"`
	Histogram   []Bucket    `json:"histogram"`

	SchemaTypes      []Count `json:"schema_types"`
	RejectionReasons []Count `json:"rejection_reasons"`

	// CommonWarnings are the most frequent structure warnings among
	// rejected records.
	CommonWarnings []Count `json:"common_warnings"`

	TopURLs    []TopURL        `json:"top_urls"`
	Validation ValidationStats `json:"validation"`

	Recommendations []string `json:"recommendations"`
}

// Duration returns the wall time of the run.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// RejectionRate returns the share of rejected records.
func (s *Summary) RejectionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Rejected) / float64(s.Total)
}

// ScoreStats are descriptive statistics of a set of scores.
type ScoreStats struct {
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	StdDev  float64 `json:"std_dev"`
}

// ScoreRanges counts accepted records by quality band.
type ScoreRanges struct {
	Excellent int `json:"90-100"`
	Good      int `json:"80-89"`
}

// Bucket is one bar of the score histogram, covering [Low, Low+width).
type Bucket struct {
	Low   int `json:"low"`
	High  int `json:"high"`
	Count int `json:"count"`
}

// Count is a labeled tally, sorted most frequent first in a Summary.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopURL is one of the highest scoring accepted records.
type TopURL struct {
	URL        string  `json:"url"`
	Score      float64 `json:"score"`
	SchemaType string  `json:"schema_type"`
}

// ValidationStats counts validation outcomes across all records.
// The richness counts cover accepted records only.
type ValidationStats struct {
	ValidSyntax      int     `json:"valid_syntax"`
	InvalidSyntax    int     `json:"invalid_syntax"`
	ValidStructure   int     `json:"valid_structure"`
	MissingContext   int     `json:"missing_context"`
	MissingType      int     `json:"missing_type"`
	WithID           int     `json:"with_id"`
	WithSameAs       int     `json:"with_same_as"`
	WithQualityLinks int     `json:"with_quality_links"`
	AverageDepth     float64 `json:"average_nested_depth"`
}
