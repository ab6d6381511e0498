package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ldcurate"
)

// Ensure LoggingScorer implements ldcurate.Scorer.
var _ ldcurate.Scorer = (*LoggingScorer)(nil)

// LoggingScorer wraps a Scorer with debug logging of each verdict.
type LoggingScorer struct {
	next   ldcurate.Scorer
	logger *slog.Logger
}

// NewLoggingScorer creates a new LoggingScorer.
func NewLoggingScorer(next ldcurate.Scorer, logger *slog.Logger) *LoggingScorer {
	return &LoggingScorer{next: next, logger: logger}
}

// Score delegates to the wrapped scorer and logs the result.
func (s *LoggingScorer) Score(obj any) (result *ldcurate.ScoreResult) {
	defer func(begin time.Time) {
		var schemaType string
		if result.ValidationDetails != nil {
			schemaType = result.ValidationDetails.SchemaType
		}
		s.logger.Debug("score",
			"type", schemaType,
			"score", result.Score,
			"passed", result.Passed,
			"reason", result.RejectionReason,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Score(obj)
}
