// Package score combines validation results into a bounded quality score
// and an accept/reject verdict.
package score

import (
	"math"

	"github.com/fwojciec/ldcurate"
)

var _ ldcurate.Scorer = (*Scorer)(nil)

// Richness points. Each identity marker is worth identityPoints and every
// nested entity beyond the root adds one point, up to entityPointsCap.
const (
	identityPoints  = 5
	entityPointsCap = 5
)

// Scorer scores JSON-LD objects. It is safe for concurrent use when its
// Validator and RuleRegistry are.
type Scorer struct {
	validator ldcurate.Validator
	rules     ldcurate.RuleRegistry
	cfg       ldcurate.ScoringConfig
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithConfig replaces the default scoring caps and threshold.
func WithConfig(cfg ldcurate.ScoringConfig) Option {
	return func(s *Scorer) {
		s.cfg = cfg
	}
}

// WithThreshold sets the acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(s *Scorer) {
		s.cfg.Threshold = threshold
	}
}

// New returns a Scorer that validates with validator and looks up priority
// types in rules.
func New(validator ldcurate.Validator, rules ldcurate.RuleRegistry, opts ...Option) *Scorer {
	s := &Scorer{
		validator: validator,
		rules:     rules,
		cfg:       ldcurate.DefaultConfig().Scoring,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score validates obj and scores it. Structurally invalid objects are
// rejected with a zero score and no breakdown.
func (s *Scorer) Score(obj any) *ldcurate.ScoreResult {
	ok, details := s.validator.Validate(obj)
	if !ok {
		return &ldcurate.ScoreResult{
			ValidationDetails: details,
			RejectionReason:   ldcurate.ReasonValidationFailed,
		}
	}

	w := s.cfg.Weights
	b := ldcurate.ScoreBreakdown{
		Syntax:           s.syntax(details),
		Completeness:     s.completeness(details),
		GoogleConformity: s.conformity(details),
		SemanticRichness: math.Min(richness(details.Richness), w.SemanticRichness),
		TypeSpecificity:  math.Min(float64(details.SpecificityScore), w.TypeSpecificity),
	}
	if s.rules.IsPriorityType(details.SchemaType) {
		b.AIPriorityBonus = s.cfg.PriorityBonus
	}

	total := b.Total()
	passed := total >= s.cfg.Threshold

	rounded := ldcurate.ScoreBreakdown{
		Syntax:           round2(b.Syntax),
		Completeness:     round2(b.Completeness),
		GoogleConformity: round2(b.GoogleConformity),
		SemanticRichness: round2(b.SemanticRichness),
		TypeSpecificity:  round2(b.TypeSpecificity),
		AIPriorityBonus:  round2(b.AIPriorityBonus),
	}
	result := &ldcurate.ScoreResult{
		Score:             round2(total),
		Breakdown:         &rounded,
		Passed:            passed,
		ValidationDetails: details,
	}
	if !passed {
		result.RejectionReason = ldcurate.ReasonScoreTooLow(result.Score, s.cfg.Threshold)
	}
	return result
}

func (s *Scorer) syntax(details *ldcurate.ValidationDetails) float64 {
	warnings := 0
	if details.Syntax != nil {
		warnings = len(details.Syntax.Warnings())
	}
	return math.Max(0, s.cfg.Weights.Syntax-s.cfg.WarningPenalty*float64(warnings))
}

func (s *Scorer) completeness(details *ldcurate.ValidationDetails) float64 {
	limit := s.cfg.Weights.Completeness
	if details.Properties == nil {
		return 0
	}
	info := details.Properties.Info
	applicable := info.RequiredCount + info.RecommendedCount
	if applicable == 0 {
		count := 0
		if details.Structure != nil {
			count = details.Structure.Info.PropertyCount
		}
		return math.Min(float64(count)*s.cfg.PropertyMultiplier, limit)
	}
	present := info.RequiredPresent + info.RecommendedPresent
	return limit * float64(present) / float64(applicable)
}

func (s *Scorer) conformity(details *ldcurate.ValidationDetails) float64 {
	limit := s.cfg.Weights.GoogleConformity
	if details.Properties == nil {
		return 0
	}
	info := details.Properties.Info
	switch {
	case info.RequiredCount == 0:
		return s.cfg.NeutralConformity
	case info.RequiredPresent == info.RequiredCount:
		return limit
	default:
		return limit * float64(info.RequiredPresent) / float64(info.RequiredCount)
	}
}

func richness(p *ldcurate.RichnessProfile) float64 {
	if p == nil {
		return 0
	}
	var points int
	if p.HasID {
		points += identityPoints
	}
	if p.HasSameAs {
		points += identityPoints
	}
	if p.HasQualityLinks {
		points += identityPoints
	}
	points += min(max(p.NestedEntitiesCount-1, 0), entityPointsCap)
	return float64(points)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
