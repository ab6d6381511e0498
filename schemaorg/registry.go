// Package schemaorg provides the Schema.org rule table used to validate
// JSON-LD, together with type-hierarchy fallback for types it has no
// rules for.
package schemaorg

import (
	"maps"
	"slices"

	"github.com/fwojciec/ldcurate"
)

var _ ldcurate.RuleRegistry = (*Registry)(nil)

// Registry is an immutable rule table. It is safe for concurrent use.
type Registry struct {
	rules    map[string]ldcurate.RuleSet
	lineage  map[string][]string
	priority map[string]bool
	types    []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithPriorityTypes replaces the set of types that earn the priority bonus.
func WithPriorityTypes(types ...string) Option {
	return func(r *Registry) {
		r.priority = make(map[string]bool, len(types))
		for _, t := range types {
			r.priority[t] = true
		}
	}
}

// WithRules adds rule sets, replacing built-in rules of the same type.
// Rule sets without a type are ignored.
func WithRules(rules ...ldcurate.RuleSet) Option {
	return func(r *Registry) {
		for _, rs := range rules {
			if rs.Type == "" {
				continue
			}
			r.rules[rs.Type] = cloneRuleSet(rs)
		}
	}
}

// WithLineage records the ancestor chain of a type that has no rules of
// its own, nearest ancestor first.
func WithLineage(schemaType string, parents ...string) Option {
	return func(r *Registry) {
		r.lineage[schemaType] = slices.Clone(parents)
	}
}

// NewRegistry returns a Registry holding the built-in rules. Without
// WithPriorityTypes the default priority list is used.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		rules:   make(map[string]ldcurate.RuleSet, len(builtinRules)),
		lineage: maps.Clone(builtinLineage),
	}
	for _, rs := range builtinRules {
		r.rules[rs.Type] = rs
	}
	WithPriorityTypes(ldcurate.DefaultConfig().Schema.PriorityTypes...)(r)

	for _, opt := range opts {
		opt(r)
	}

	seen := make(map[string]bool, len(r.rules)+len(r.lineage))
	for t := range r.rules {
		seen[t] = true
	}
	for t := range r.lineage {
		seen[t] = true
	}
	r.types = slices.Sorted(maps.Keys(seen))

	return r
}

// Rules returns the rules for schemaType.
//
// Types with rules of their own resolve exactly. Types with a known
// lineage take the rules of their nearest ancestor that has rules, while
// keeping their own ancestor chain. Anything else resolves to the generic
// rule set: no required or recommended properties and no ancestors.
func (r *Registry) Rules(schemaType string) ldcurate.RuleSet {
	if rs, ok := r.rules[schemaType]; ok {
		return cloneRuleSet(rs)
	}

	if parents, ok := r.lineage[schemaType]; ok {
		for _, parent := range parents {
			rs, ok := r.rules[parent]
			if !ok {
				continue
			}
			out := cloneRuleSet(rs)
			out.Type = schemaType
			out.ParentTypes = slices.Clone(parents)
			return out
		}
		return ldcurate.RuleSet{Type: schemaType, ParentTypes: slices.Clone(parents)}
	}

	return ldcurate.RuleSet{}
}

// Types returns all recognized type names, sorted.
func (r *Registry) Types() []string {
	return slices.Clone(r.types)
}

// IsKnown reports whether schemaType has rules or a known lineage.
func (r *Registry) IsKnown(schemaType string) bool {
	if _, ok := r.rules[schemaType]; ok {
		return true
	}
	_, ok := r.lineage[schemaType]
	return ok
}

// IsPriorityType reports whether schemaType earns the priority bonus.
func (r *Registry) IsPriorityType(schemaType string) bool {
	return r.priority[schemaType]
}

func cloneRuleSet(rs ldcurate.RuleSet) ldcurate.RuleSet {
	out := ldcurate.RuleSet{
		Type:        rs.Type,
		Required:    slices.Clone(rs.Required),
		Recommended: slices.Clone(rs.Recommended),
		ParentTypes: slices.Clone(rs.ParentTypes),
	}
	if rs.ExpectedTypes != nil {
		out.ExpectedTypes = make(map[string][]string, len(rs.ExpectedTypes))
		for k, v := range rs.ExpectedTypes {
			out.ExpectedTypes[k] = slices.Clone(v)
		}
	}
	return out
}
