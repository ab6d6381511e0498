package ldcurate

// RuleSet describes the property expectations for one Schema.org type.
// A RuleSet returned by a RuleRegistry is owned by the caller.
type RuleSet struct {
	// Type is the schema type the rules were defined for.
	// Empty for the generic fallback rule set.
	Type string

	Required    []string
	Recommended []string

	// ExpectedTypes maps a property to the nested types it may hold.
	ExpectedTypes map[string][]string

	// ParentTypes is the ancestor chain, nearest ancestor first.
	ParentTypes []string
}

// RuleRegistry resolves validation rules for Schema.org types.
type RuleRegistry interface {
	// Rules returns the rules for schemaType. Unknown types fall back
	// through their known ancestry, then to a generic rule set, so a
	// RuleSet is always returned.
	Rules(schemaType string) RuleSet

	// Types returns every type name the registry recognizes, sorted.
	Types() []string

	// IsKnown reports whether schemaType is recognized.
	IsKnown(schemaType string) bool

	// IsPriorityType reports whether schemaType earns the priority bonus.
	IsPriorityType(schemaType string) bool
}
