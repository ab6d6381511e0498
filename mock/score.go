package mock

import "github.com/fwojciec/ldcurate"

var _ ldcurate.Validator = (*Validator)(nil)

// Validator is a mock implementation of ldcurate.Validator.
type Validator struct {
	ValidateFn func(obj any) (bool, *ldcurate.ValidationDetails)
}

func (v *Validator) Validate(obj any) (bool, *ldcurate.ValidationDetails) {
	return v.ValidateFn(obj)
}

var _ ldcurate.Scorer = (*Scorer)(nil)

// Scorer is a mock implementation of ldcurate.Scorer.
type Scorer struct {
	ScoreFn func(obj any) *ldcurate.ScoreResult
}

func (s *Scorer) Score(obj any) *ldcurate.ScoreResult {
	return s.ScoreFn(obj)
}

var _ ldcurate.RuleRegistry = (*RuleRegistry)(nil)

// RuleRegistry is a mock implementation of ldcurate.RuleRegistry.
type RuleRegistry struct {
	RulesFn          func(schemaType string) ldcurate.RuleSet
	TypesFn          func() []string
	IsKnownFn        func(schemaType string) bool
	IsPriorityTypeFn func(schemaType string) bool
}

func (r *RuleRegistry) Rules(schemaType string) ldcurate.RuleSet {
	return r.RulesFn(schemaType)
}

func (r *RuleRegistry) Types() []string {
	return r.TypesFn()
}

func (r *RuleRegistry) IsKnown(schemaType string) bool {
	return r.IsKnownFn(schemaType)
}

func (r *RuleRegistry) IsPriorityType(schemaType string) bool {
	return r.IsPriorityTypeFn(schemaType)
}
