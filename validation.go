package ldcurate

// Object is a decoded JSON-LD node. Keys prefixed with "@" are envelope keys
// (@context, @type, @id); all other keys are domain properties.
type Object = map[string]any

// Severity tags a diagnostic as blocking or informational.
type Severity string

const (
	// SeverityError marks a hard structural failure. Any error invalidates its stage.
	SeverityError Severity = "error"

	// SeverityWarning marks a soft quality issue that never blocks validation.
	SeverityWarning Severity = "warning"
)

// Diagnostic codes emitted by the validator.
const (
	CodeInvalidRoot        = "invalid_root"
	CodeEmptyArray         = "empty_array"
	CodeArrayTruncated     = "array_truncated"
	CodeMissingContext     = "missing_context"
	CodeMissingType        = "missing_type"
	CodeNonSchemaContext   = "non_schema_context"
	CodeUnknownType        = "unknown_type"
	CodeFewProperties      = "few_properties"
	CodeMissingRequired    = "missing_required"
	CodeMissingRecommended = "missing_recommended"
	CodeTypeMismatch       = "type_mismatch"
)

// Diagnostic is a single finding produced by a validation stage.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`

	// Property, Expected, and Actual are set for property-level findings.
	Property string   `json:"property,omitempty"`
	Expected []string `json:"expected,omitempty"`
	Actual   string   `json:"actual,omitempty"`
}

// Outcome is the result of one validation stage.
// Valid is true exactly when no diagnostic has SeverityError.
type Outcome struct {
	Valid       bool         `json:"is_valid"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// NewOutcome returns a valid Outcome with no diagnostics.
func NewOutcome() Outcome {
	return Outcome{Valid: true, Diagnostics: []Diagnostic{}}
}

// Add appends a diagnostic. Adding an error invalidates the outcome.
func (o *Outcome) Add(d Diagnostic) {
	o.Diagnostics = append(o.Diagnostics, d)
	if d.Severity == SeverityError {
		o.Valid = false
	}
}

// Errors returns the diagnostics with SeverityError, in order.
func (o *Outcome) Errors() []Diagnostic {
	return o.filter(SeverityError)
}

// Warnings returns the diagnostics with SeverityWarning, in order.
func (o *Outcome) Warnings() []Diagnostic {
	return o.filter(SeverityWarning)
}

func (o *Outcome) filter(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range o.Diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// SyntaxResult is the outcome of the root-shape check.
type SyntaxResult struct {
	Outcome
	Info SyntaxInfo `json:"info"`
}

// SyntaxInfo records the shape of the validated input.
type SyntaxInfo struct {
	// Shape is "object" or "array".
	Shape string `json:"shape,omitempty"`

	// IgnoredElements counts array elements after the first.
	IgnoredElements int `json:"ignored_elements,omitempty"`
}

// StructureResult is the outcome of the JSON-LD envelope check.
type StructureResult struct {
	Outcome
	Info StructureInfo `json:"info"`
}

// StructureInfo records envelope facts about the validated object.
type StructureInfo struct {
	SchemaType       string `json:"schema_type,omitempty"`
	PropertyCount    int    `json:"property_count"`
	SchemaOrgContext bool   `json:"schema_org_context"`
	KnownType        bool   `json:"known_type"`
}

// PropertiesResult is the outcome of the property completeness check.
// It is always valid once reached; its counts feed scoring.
type PropertiesResult struct {
	Outcome
	Info PropertiesInfo `json:"info"`
}

// PropertiesInfo records property coverage against the resolved RuleSet.
type PropertiesInfo struct {
	RequiredCount      int            `json:"required_count"`
	RequiredPresent    int            `json:"required_present"`
	RecommendedCount   int            `json:"recommended_count"`
	RecommendedPresent int            `json:"recommended_present"`
	MissingRequired    []string       `json:"missing_required"`
	MissingRecommended []string       `json:"missing_recommended"`
	TypeMismatches     []TypeMismatch `json:"type_mismatches"`
}

// TypeMismatch records a nested entity whose @type is outside the allowed set.
type TypeMismatch struct {
	Property string   `json:"property"`
	Expected []string `json:"expected"`
	Actual   string   `json:"actual"`
}

// RichnessProfile describes identity markers and nesting of an object.
type RichnessProfile struct {
	HasID               bool `json:"has_id"`
	HasSameAs           bool `json:"has_same_as"`
	SameAsCount         int  `json:"same_as_count"`
	HasQualityLinks     bool `json:"has_quality_links"`
	NestedDepth         int  `json:"nested_depth"`
	NestedEntitiesCount int  `json:"nested_entities_count"`

	// DepthLimited is set when the walk stopped descending at the depth cap.
	DepthLimited bool `json:"depth_limited,omitempty"`
}

// ValidationDetails aggregates the validation of one structured-data object.
// Stages that did not run are nil.
type ValidationDetails struct {
	Syntax           *SyntaxResult     `json:"syntax"`
	Structure        *StructureResult  `json:"structure"`
	Properties       *PropertiesResult `json:"properties"`
	Richness         *RichnessProfile  `json:"richness"`
	SchemaType       string            `json:"schema_type"`
	SpecificityScore int               `json:"specificity_score"`
}

// Valid reports whether the syntax and structure stages both passed.
func (d *ValidationDetails) Valid() bool {
	if d == nil || d.Syntax == nil || d.Structure == nil {
		return false
	}
	return d.Syntax.Valid && d.Structure.Valid
}

// Validator checks structured data against Schema.org rules.
// Implementations must be pure: validating the same object twice
// yields identical details.
type Validator interface {
	Validate(obj any) (bool, *ValidationDetails)
}
