// Package validate checks JSON-LD objects against Schema.org rules.
//
// Validation runs three stages in order, each gated on the previous one:
// the root shape, the JSON-LD envelope (@context and @type), and property
// completeness against the RuleSet of the detected type. Objects that pass
// the first two stages are also profiled for semantic richness and type
// specificity.
package validate

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/fwojciec/ldcurate"
)

var _ ldcurate.Validator = (*Validator)(nil)

// Validator is safe for concurrent use; it holds no mutable state.
type Validator struct {
	rules          ldcurate.RuleRegistry
	minProperties  int
	qualityDomains []string
	maxDepth       int
}

// Option configures a Validator.
type Option func(*Validator)

// WithMinProperties sets the property count below which the envelope
// stage warns. Defaults to ldcurate.DefaultMinProperties.
func WithMinProperties(n int) Option {
	return func(v *Validator) {
		v.minProperties = n
	}
}

// WithQualityDomains sets the trusted sameAs domains.
func WithQualityDomains(domains ...string) Option {
	return func(v *Validator) {
		v.qualityDomains = lower(domains)
	}
}

// WithMaxDepth caps how deep the richness walk descends.
// Defaults to ldcurate.DefaultMaxNestingDepth.
func WithMaxDepth(n int) Option {
	return func(v *Validator) {
		v.maxDepth = n
	}
}

// New returns a Validator resolving rules from the given registry.
func New(rules ldcurate.RuleRegistry, opts ...Option) *Validator {
	v := &Validator{
		rules:          rules,
		minProperties:  ldcurate.DefaultMinProperties,
		qualityDomains: lower(ldcurate.DefaultConfig().Schema.QualityDomains),
		maxDepth:       ldcurate.DefaultMaxNestingDepth,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the full pipeline over obj. The input is never modified.
func (v *Validator) Validate(obj any) (bool, *ldcurate.ValidationDetails) {
	details := &ldcurate.ValidationDetails{}

	syntax, root := checkSyntax(obj)
	details.Syntax = syntax
	if !syntax.Valid {
		return false, details
	}

	structure := v.checkStructure(root)
	details.Structure = structure
	if !structure.Valid {
		return false, details
	}

	schemaType := structure.Info.SchemaType
	rules := v.rules.Rules(schemaType)

	details.SchemaType = schemaType
	details.Properties = checkProperties(root, rules, structure.Info.PropertyCount)
	details.Richness = AnalyzeRichness(root, v.qualityDomains, v.maxDepth)
	details.SpecificityScore = Specificity(len(rules.ParentTypes))

	return true, details
}

// checkSyntax verifies the root shape and returns the object to validate.
func checkSyntax(obj any) (*ldcurate.SyntaxResult, ldcurate.Object) {
	result := &ldcurate.SyntaxResult{Outcome: ldcurate.NewOutcome()}

	switch v := obj.(type) {
	case map[string]any:
		result.Info.Shape = "object"
		return result, v

	case []any:
		result.Info.Shape = "array"
		if len(v) == 0 {
			result.Add(ldcurate.Diagnostic{
				Severity: ldcurate.SeverityError,
				Code:     ldcurate.CodeEmptyArray,
				Message:  "JSON-LD array is empty",
			})
			return result, nil
		}
		first, ok := v[0].(map[string]any)
		if !ok {
			result.Add(ldcurate.Diagnostic{
				Severity: ldcurate.SeverityError,
				Code:     ldcurate.CodeInvalidRoot,
				Message:  fmt.Sprintf("first JSON-LD array element must be an object, not %s", kindOf(v[0])),
			})
			return result, nil
		}
		result.Info.IgnoredElements = len(v) - 1
		result.Add(ldcurate.Diagnostic{
			Severity: ldcurate.SeverityWarning,
			Code:     ldcurate.CodeArrayTruncated,
			Message:  fmt.Sprintf("JSON-LD is an array of %d elements, only the first is validated", len(v)),
		})
		return result, first

	default:
		result.Add(ldcurate.Diagnostic{
			Severity: ldcurate.SeverityError,
			Code:     ldcurate.CodeInvalidRoot,
			Message:  fmt.Sprintf("JSON-LD must be an object or an array, not %s", kindOf(obj)),
		})
		return result, nil
	}
}

// checkStructure verifies the JSON-LD envelope.
func (v *Validator) checkStructure(obj ldcurate.Object) *ldcurate.StructureResult {
	result := &ldcurate.StructureResult{Outcome: ldcurate.NewOutcome()}

	if ctx, ok := obj["@context"]; !ok {
		result.Add(ldcurate.Diagnostic{
			Severity: ldcurate.SeverityError,
			Code:     ldcurate.CodeMissingContext,
			Message:  "missing @context",
			Property: "@context",
		})
	} else if strings.Contains(strings.ToLower(stringForm(ctx)), "schema.org") {
		result.Info.SchemaOrgContext = true
	} else {
		result.Add(ldcurate.Diagnostic{
			Severity: ldcurate.SeverityWarning,
			Code:     ldcurate.CodeNonSchemaContext,
			Message:  "@context does not reference schema.org",
			Property: "@context",
		})
	}

	if raw, ok := obj["@type"]; !ok {
		result.Add(ldcurate.Diagnostic{
			Severity: ldcurate.SeverityError,
			Code:     ldcurate.CodeMissingType,
			Message:  "missing @type",
			Property: "@type",
		})
	} else {
		// A present but unusable @type (empty, null, a number, an object)
		// keeps its literal form and falls back to the generic rules.
		schemaType, ok := resolveType(raw)
		if !ok {
			schemaType = stringForm(raw)
		}
		result.Info.SchemaType = schemaType
		result.Info.KnownType = v.rules.IsKnown(schemaType)
		if !result.Info.KnownType {
			result.Add(ldcurate.Diagnostic{
				Severity: ldcurate.SeverityWarning,
				Code:     ldcurate.CodeUnknownType,
				Message:  fmt.Sprintf("type %q is not recognized (may still be valid)", schemaType),
				Property: "@type",
				Actual:   schemaType,
			})
		}
	}

	result.Info.PropertyCount = countProperties(obj)
	if result.Info.PropertyCount < v.minProperties {
		result.Add(ldcurate.Diagnostic{
			Severity: ldcurate.SeverityWarning,
			Code:     ldcurate.CodeFewProperties,
			Message: fmt.Sprintf("only %d properties (recommended minimum: %d)",
				result.Info.PropertyCount, v.minProperties),
		})
	}

	return result
}

// checkProperties measures coverage of the RuleSet. It is always valid.
func checkProperties(obj ldcurate.Object, rules ldcurate.RuleSet, propertyCount int) *ldcurate.PropertiesResult {
	result := &ldcurate.PropertiesResult{Outcome: ldcurate.NewOutcome()}
	info := &result.Info

	info.MissingRequired = missing(obj, rules.Required)
	info.RequiredCount = len(rules.Required)
	info.RequiredPresent = info.RequiredCount - len(info.MissingRequired)
	if len(info.MissingRequired) > 0 {
		result.Add(ldcurate.Diagnostic{
			Severity: ldcurate.SeverityWarning,
			Code:     ldcurate.CodeMissingRequired,
			Message:  "missing required properties: " + strings.Join(info.MissingRequired, ", "),
			Expected: info.MissingRequired,
		})
	}

	info.MissingRecommended = missing(obj, rules.Recommended)
	info.RecommendedCount = len(rules.Recommended)
	info.RecommendedPresent = info.RecommendedCount - len(info.MissingRecommended)
	if len(info.MissingRecommended) > 0 {
		result.Add(ldcurate.Diagnostic{
			Severity: ldcurate.SeverityWarning,
			Code:     ldcurate.CodeMissingRecommended,
			Message:  "missing recommended properties: " + strings.Join(info.MissingRecommended, ", "),
			Expected: info.MissingRecommended,
		})
	}

	info.TypeMismatches = []ldcurate.TypeMismatch{}
	for _, prop := range slices.Sorted(maps.Keys(rules.ExpectedTypes)) {
		allowed := rules.ExpectedTypes[prop]
		nested, ok := obj[prop].(map[string]any)
		if !ok {
			continue
		}
		rawType, ok := nested["@type"]
		if !ok {
			continue
		}
		if typeAllowed(rawType, allowed) {
			continue
		}
		actual := stringForm(rawType)
		info.TypeMismatches = append(info.TypeMismatches, ldcurate.TypeMismatch{
			Property: prop,
			Expected: slices.Clone(allowed),
			Actual:   actual,
		})
		result.Add(ldcurate.Diagnostic{
			Severity: ldcurate.SeverityWarning,
			Code:     ldcurate.CodeTypeMismatch,
			Message: fmt.Sprintf("property %q has type %s (expected: %s)",
				prop, actual, strings.Join(allowed, ", ")),
			Property: prop,
			Expected: slices.Clone(allowed),
			Actual:   actual,
		})
	}

	return result
}

// resolveType returns the type name of a @type value. Arrays resolve to
// their first non-empty string.
func resolveType(raw any) (string, bool) {
	switch t := raw.(type) {
	case string:
		t = strings.TrimSpace(t)
		return t, t != ""
	case []any:
		for _, el := range t {
			if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), true
			}
		}
	}
	return "", false
}

// typeAllowed reports whether any type named by raw is in allowed.
func typeAllowed(raw any, allowed []string) bool {
	switch t := raw.(type) {
	case string:
		return slices.Contains(allowed, t)
	case []any:
		for _, el := range t {
			if s, ok := el.(string); ok && slices.Contains(allowed, s) {
				return true
			}
		}
	}
	return false
}

func missing(obj ldcurate.Object, props []string) []string {
	out := []string{}
	for _, p := range props {
		if _, ok := obj[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func countProperties(obj ldcurate.Object) int {
	var n int
	for k := range obj {
		if !strings.HasPrefix(k, "@") {
			n++
		}
	}
	return n
}

// stringForm renders a JSON value as text for substring checks.
func stringForm(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func lower(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}
