package validate_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/schemaorg"
	"github.com/fwojciec/ldcurate/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func codes(ds []ldcurate.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

func newValidator(opts ...validate.Option) *validate.Validator {
	return validate.New(schemaorg.NewRegistry(), opts...)
}

func TestValidator_Syntax(t *testing.T) {
	t.Parallel()

	t.Run("accepts object", func(t *testing.T) {
		t.Parallel()

		_, details := newValidator().Validate(decode(t, `{"@context":"https://schema.org","@type":"Thing"}`))

		require.NotNil(t, details.Syntax)
		assert.True(t, details.Syntax.Valid)
		assert.Equal(t, "object", details.Syntax.Info.Shape)
		assert.Empty(t, details.Syntax.Diagnostics)
	})

	t.Run("validates first element of array with warning", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t, `[
			{"@context":"https://schema.org","@type":"Person","name":"A","url":"u","jobTitle":"j"},
			{"nonsense":true}
		]`))

		assert.True(t, ok)
		assert.True(t, details.Syntax.Valid)
		assert.Equal(t, "array", details.Syntax.Info.Shape)
		assert.Equal(t, 1, details.Syntax.Info.IgnoredElements)
		assert.Equal(t, []string{ldcurate.CodeArrayTruncated}, codes(details.Syntax.Warnings()))
		assert.Equal(t, "Person", details.SchemaType)
	})

	t.Run("rejects empty array", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate([]any{})

		assert.False(t, ok)
		assert.False(t, details.Syntax.Valid)
		assert.Equal(t, []string{ldcurate.CodeEmptyArray}, codes(details.Syntax.Errors()))
		assert.Nil(t, details.Structure)
		assert.Nil(t, details.Properties)
		assert.Nil(t, details.Richness)
	})

	t.Run("rejects scalars", func(t *testing.T) {
		t.Parallel()

		for _, input := range []any{"text", 42.0, true, nil} {
			ok, details := newValidator().Validate(input)

			assert.False(t, ok)
			assert.Equal(t, []string{ldcurate.CodeInvalidRoot}, codes(details.Syntax.Errors()))
			assert.Nil(t, details.Structure)
		}
	})

	t.Run("rejects array whose first element is not an object", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t, `["a", {"@type":"Thing"}]`))

		assert.False(t, ok)
		assert.Equal(t, []string{ldcurate.CodeInvalidRoot}, codes(details.Syntax.Errors()))
	})
}

func TestValidator_Structure(t *testing.T) {
	t.Parallel()

	t.Run("reports both missing envelope keys", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t, `{"name":"no context or type"}`))

		assert.False(t, ok)
		require.NotNil(t, details.Structure)
		assert.False(t, details.Structure.Valid)
		assert.Equal(t,
			[]string{ldcurate.CodeMissingContext, ldcurate.CodeMissingType},
			codes(details.Structure.Errors()))
		assert.Nil(t, details.Properties)
		assert.Nil(t, details.Richness)
		assert.Equal(t, 0, details.SpecificityScore)
	})

	t.Run("stops before properties when context is missing", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t, `{"@type":"Article","headline":"h","image":"i","author":"a"}`))

		assert.False(t, ok)
		assert.Equal(t, []string{ldcurate.CodeMissingContext}, codes(details.Structure.Errors()))
		assert.Nil(t, details.Properties)
	})

	t.Run("stops before properties when type is missing", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t, `{"@context":"https://schema.org","a":1,"b":2,"c":3}`))

		assert.False(t, ok)
		assert.Equal(t, []string{ldcurate.CodeMissingType}, codes(details.Structure.Errors()))
		assert.Nil(t, details.Properties)
	})

	t.Run("keeps unusable type as unknown", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct {
			raw  string
			want string
		}{
			{raw: `""`, want: ""},
			{raw: `null`, want: "null"},
			{raw: `42`, want: "42"},
			{raw: `{"x":"y"}`, want: `{"x":"y"}`},
			{raw: `[]`, want: "[]"},
		} {
			ok, details := newValidator().Validate(decode(t,
				`{"@context":"https://schema.org","@type":`+tc.raw+`,"name":"n","description":"d","url":"u"}`))

			assert.True(t, ok, tc.raw)
			assert.Empty(t, details.Structure.Errors(), tc.raw)
			assert.Contains(t, codes(details.Structure.Warnings()), ldcurate.CodeUnknownType, tc.raw)
			assert.Equal(t, tc.want, details.Structure.Info.SchemaType, tc.raw)
			assert.False(t, details.Structure.Info.KnownType, tc.raw)
			require.NotNil(t, details.Properties, tc.raw)
		}
	})

	t.Run("resolves array type to first string", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t,
			`{"@context":"https://schema.org","@type":["NewsArticle","Article"],"headline":"h"}`))

		assert.True(t, ok)
		assert.Equal(t, "NewsArticle", details.SchemaType)
		assert.True(t, details.Structure.Info.KnownType)
	})

	t.Run("warns when context does not mention schema.org", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t,
			`{"@context":"https://example.org/vocab","@type":"Person","name":"A","url":"u","email":"e"}`))

		assert.True(t, ok)
		assert.False(t, details.Structure.Info.SchemaOrgContext)
		assert.Equal(t, []string{ldcurate.CodeNonSchemaContext}, codes(details.Structure.Warnings()))
	})

	t.Run("matches schema.org inside object context case-insensitively", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t,
			`{"@context":{"@vocab":"HTTPS://SCHEMA.ORG/"},"@type":"Person","name":"A","url":"u","email":"e"}`))

		assert.True(t, ok)
		assert.True(t, details.Structure.Info.SchemaOrgContext)
		assert.Empty(t, details.Structure.Warnings())
	})

	t.Run("warns on unrecognized type without failing", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t,
			`{"@context":"https://schema.org","@type":"WidgetXYZ","a":1,"b":2,"c":3,"d":4,"e":5}`))

		assert.True(t, ok)
		assert.True(t, details.Structure.Valid)
		assert.False(t, details.Structure.Info.KnownType)
		assert.Equal(t, []string{ldcurate.CodeUnknownType}, codes(details.Structure.Warnings()))
		assert.Equal(t, 5, details.Structure.Info.PropertyCount)
	})

	t.Run("warns on thin property count", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t,
			`{"@context":"https://schema.org","@type":"Person","@id":"#p","name":"A"}`))

		assert.True(t, ok)
		assert.Equal(t, 1, details.Structure.Info.PropertyCount)
		assert.Equal(t, []string{ldcurate.CodeFewProperties}, codes(details.Structure.Warnings()))
	})

	t.Run("respects configured minimum", func(t *testing.T) {
		t.Parallel()

		v := newValidator(validate.WithMinProperties(1))
		_, details := v.Validate(decode(t, `{"@context":"https://schema.org","@type":"Person","name":"A"}`))

		assert.Empty(t, details.Structure.Warnings())
	})
}

func TestValidator_Properties(t *testing.T) {
	t.Parallel()

	t.Run("counts partial article coverage", func(t *testing.T) {
		t.Parallel()

		ok, details := newValidator().Validate(decode(t,
			`{"@context":"https://schema.org","@type":"Article","headline":"T","author":{"@type":"Person","name":"X"}}`))

		require.True(t, ok)
		require.NotNil(t, details.Properties)
		info := details.Properties.Info
		assert.True(t, details.Properties.Valid)
		assert.Equal(t, 4, info.RequiredCount)
		assert.Equal(t, 2, info.RequiredPresent)
		assert.Equal(t, []string{"image", "datePublished"}, info.MissingRequired)
		assert.Equal(t, 4, info.RecommendedCount)
		assert.Equal(t, 0, info.RecommendedPresent)
		assert.Empty(t, info.TypeMismatches)
		assert.Equal(t,
			[]string{ldcurate.CodeMissingRequired, ldcurate.CodeMissingRecommended},
			codes(details.Properties.Warnings()))
	})

	t.Run("records nested type mismatches", func(t *testing.T) {
		t.Parallel()

		_, details := newValidator().Validate(decode(t, `{
			"@context":"https://schema.org","@type":"Article","headline":"T",
			"author":{"@type":"Place","name":"X"},
			"publisher":{"@type":"Organization","name":"P"},
			"image":{"@type":"VideoObject"}
		}`))

		info := details.Properties.Info
		require.Len(t, info.TypeMismatches, 2)
		assert.Equal(t, ldcurate.TypeMismatch{
			Property: "author",
			Expected: []string{"Person", "Organization"},
			Actual:   "Place",
		}, info.TypeMismatches[0])
		assert.Equal(t, "image", info.TypeMismatches[1].Property)
		assert.True(t, details.Properties.Valid)
	})

	t.Run("accepts nested array type containing allowed type", func(t *testing.T) {
		t.Parallel()

		_, details := newValidator().Validate(decode(t, `{
			"@context":"https://schema.org","@type":"Article","headline":"T",
			"author":{"@type":["Thing","Person"],"name":"X"}
		}`))

		assert.Empty(t, details.Properties.Info.TypeMismatches)
	})

	t.Run("ignores nested values without type", func(t *testing.T) {
		t.Parallel()

		_, details := newValidator().Validate(decode(t, `{
			"@context":"https://schema.org","@type":"Article","headline":"T",
			"author":{"name":"X"},"publisher":"P"
		}`))

		assert.Empty(t, details.Properties.Info.TypeMismatches)
	})

	t.Run("uses generic rules for unknown type", func(t *testing.T) {
		t.Parallel()

		_, details := newValidator().Validate(decode(t,
			`{"@context":"https://schema.org","@type":"WidgetXYZ","a":1,"b":2,"c":3,"d":4,"e":5}`))

		info := details.Properties.Info
		assert.Equal(t, 0, info.RequiredCount)
		assert.Equal(t, 0, info.RecommendedCount)
		assert.Empty(t, details.Properties.Diagnostics)
		assert.Equal(t, 1, details.SpecificityScore)
	})
}

func TestValidator_Specificity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		schemaType string
		want       int
	}{
		{"Thing", 1},
		{"Product", 4},
		{"Article", 7},
		{"NewsArticle", 10},
		{"FAQPage", 10},
		{"TechArticle", 10},
		{"WidgetXYZ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.schemaType, func(t *testing.T) {
			t.Parallel()

			obj := map[string]any{"@context": "https://schema.org", "@type": tt.schemaType}
			_, details := newValidator().Validate(obj)

			assert.Equal(t, tt.want, details.SpecificityScore)
		})
	}
}

func TestValidator_Idempotent(t *testing.T) {
	t.Parallel()

	raw := `{
		"@context":"https://schema.org","@type":"FAQPage","@id":"https://example.com/faq",
		"sameAs":["https://www.wikidata.org/wiki/Q1"],
		"mainEntity":{"@type":"Question","name":"Q","acceptedAnswer":{"@type":"Answer","text":"A"}}
	}`
	v := newValidator()
	obj := decode(t, raw)

	ok1, d1 := v.Validate(obj)
	ok2, d2 := v.Validate(obj)

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, d1, d2)
	assert.Equal(t, decode(t, raw), obj, "input must not be modified")
}

func TestValidator_ConcurrentUse(t *testing.T) {
	t.Parallel()

	v := newValidator()
	obj := decode(t, `{"@context":"https://schema.org","@type":"Product","name":"P","offers":{"@type":"Offer","price":"1"}}`)
	_, want := v.Validate(obj)

	done := make(chan *ldcurate.ValidationDetails, 8)
	for range 8 {
		go func() {
			_, d := v.Validate(obj)
			done <- d
		}()
	}
	for range 8 {
		assert.Equal(t, want, <-done)
	}
}
