package score_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/mock"
	"github.com/fwojciec/ldcurate/schemaorg"
	"github.com/fwojciec/ldcurate/score"
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

func newScorer(registryOpts []schemaorg.Option, opts ...score.Option) *score.Scorer {
	registry := schemaorg.NewRegistry(registryOpts...)
	return score.New(validate.New(registry), registry, opts...)
}

func TestScorer_Score(t *testing.T) {
	t.Parallel()

	t.Run("rejects partial article below threshold", func(t *testing.T) {
		t.Parallel()

		result := newScorer(nil).Score(decode(t,
			`{"@context":"https://schema.org","@type":"Article","headline":"T","author":{"@type":"Person","name":"X"}}`))

		require.NotNil(t, result.Breakdown)
		assert.Equal(t, ldcurate.ScoreBreakdown{
			Syntax:           15,
			Completeness:     7.5,
			GoogleConformity: 12.5,
			SemanticRichness: 1,
			TypeSpecificity:  7,
			AIPriorityBonus:  10,
		}, *result.Breakdown)
		assert.InDelta(t, 53.0, result.Score, 1e-9)
		assert.False(t, result.Passed)
		assert.Equal(t, "score_too_low (53/80)", result.RejectionReason)
		assert.Equal(t, "Article", result.ValidationDetails.SchemaType)
	})

	t.Run("accepts rich faq page", func(t *testing.T) {
		t.Parallel()

		result := newScorer(nil).Score(decode(t, `{
			"@context":"https://schema.org","@type":"FAQPage","@id":"https://example.com/faq",
			"sameAs":["https://www.wikidata.org/wiki/Q1"],
			"mainEntity":{"@type":"Question","name":"Q","acceptedAnswer":{"@type":"Answer","text":"A"}}
		}`))

		require.NotNil(t, result.Breakdown)
		assert.InDelta(t, 17.0, result.Breakdown.SemanticRichness, 1e-9)
		assert.InDelta(t, 10.0, result.Breakdown.AIPriorityBonus, 1e-9)
		assert.InDelta(t, 107.0, result.Score, 1e-9)
		assert.True(t, result.Passed)
		assert.Empty(t, result.RejectionReason)
		assert.Equal(t, 3, result.ValidationDetails.Richness.NestedEntitiesCount)
	})

	t.Run("rejects invalid structure without breakdown", func(t *testing.T) {
		t.Parallel()

		result := newScorer(nil).Score(decode(t, `{"name":"no context or type"}`))

		assert.Nil(t, result.Breakdown)
		assert.Zero(t, result.Score)
		assert.False(t, result.Passed)
		assert.Equal(t, ldcurate.ReasonValidationFailed, result.RejectionReason)
		require.NotNil(t, result.ValidationDetails.Structure)
		assert.Len(t, result.ValidationDetails.Structure.Errors(), 2)
		assert.Nil(t, result.ValidationDetails.Properties)
	})

	t.Run("falls back to generic scoring for unknown type", func(t *testing.T) {
		t.Parallel()

		result := newScorer(nil).Score(decode(t,
			`{"@context":"https://schema.org","@type":"WidgetXYZ","a":1,"b":2,"c":3,"d":4,"e":5}`))

		require.NotNil(t, result.Breakdown)
		assert.Equal(t, ldcurate.ScoreBreakdown{
			Syntax:           15,
			Completeness:     15,
			GoogleConformity: 15,
			SemanticRichness: 0,
			TypeSpecificity:  1,
		}, *result.Breakdown)
		assert.InDelta(t, 46.0, result.Score, 1e-9)
		assert.Equal(t, "score_too_low (46/80)", result.RejectionReason)
	})

	t.Run("scores unusable type with generic rules", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{`""`, `null`, `42`, `{"x":"y"}`, `[]`} {
			result := newScorer(nil).Score(decode(t,
				`{"@context":"https://schema.org","@type":`+raw+`,"name":"n","description":"d","url":"u"}`))

			assert.NotEqual(t, ldcurate.ReasonValidationFailed, result.RejectionReason, raw)
			require.NotNil(t, result.Breakdown, raw)
			assert.InDelta(t, 9.0, result.Breakdown.Completeness, 1e-9, raw)
			assert.InDelta(t, 1.0, result.Breakdown.TypeSpecificity, 1e-9, raw)
		}
	})

	t.Run("caps property count completeness", func(t *testing.T) {
		t.Parallel()

		obj := map[string]any{"@context": "https://schema.org", "@type": "WidgetXYZ"}
		for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
			obj[k] = k
		}

		result := newScorer(nil).Score(obj)

		assert.InDelta(t, 30.0, result.Breakdown.Completeness, 1e-9)
	})

	t.Run("awards full marks for complete type", func(t *testing.T) {
		t.Parallel()

		result := newScorer(nil).Score(decode(t, `{
			"@context":"https://schema.org","@type":"Product","name":"P",
			"image":"i","description":"d","brand":{"@type":"Brand","name":"B"},
			"offers":{"@type":"Offer","price":"1","priceCurrency":"EUR"},
			"aggregateRating":{"@type":"AggregateRating","ratingValue":"4","ratingCount":"2"},
			"review":{"@type":"Review"},"sku":"s","gtin":"g"
		}`))

		assert.InDelta(t, 30.0, result.Breakdown.Completeness, 1e-9)
		assert.InDelta(t, 25.0, result.Breakdown.GoogleConformity, 1e-9)
		assert.True(t, result.Passed)
	})

	t.Run("penalizes syntax warnings", func(t *testing.T) {
		t.Parallel()

		result := newScorer(nil).Score(decode(t, `[
			{"@context":"https://schema.org","@type":"WidgetXYZ","a":1,"b":2,"c":3},
			{"@type":"Thing"}
		]`))

		assert.InDelta(t, 13.0, result.Breakdown.Syntax, 1e-9)
	})

	t.Run("rounds components to two decimals", func(t *testing.T) {
		t.Parallel()

		result := newScorer(nil).Score(decode(t,
			`{"@context":"https://schema.org","@type":"Product","name":"P","sku":"s","gtin":"g"}`))

		// 3 of 9 applicable properties present.
		assert.Equal(t, 10.0, result.Breakdown.Completeness)

		result = newScorer(nil).Score(decode(t,
			`{"@context":"https://schema.org","@type":"Product","name":"P"}`))

		assert.Equal(t, 3.33, result.Breakdown.Completeness)
		assert.Equal(t, 57.33, result.Score)
	})

	t.Run("decides on unrounded total", func(t *testing.T) {
		t.Parallel()

		// 15 + 30*2/9 + 25 + 0 + 4 + 10 = 60.6666...
		result := newScorer(nil, score.WithThreshold(60.668)).Score(decode(t,
			`{"@context":"https://schema.org","@type":"Product","name":"P","description":"d"}`))

		assert.Equal(t, 60.67, result.Score)
		assert.False(t, result.Passed)
		assert.Equal(t, "score_too_low (60.67/60.668)", result.RejectionReason)
	})

	t.Run("accepts score equal to threshold", func(t *testing.T) {
		t.Parallel()

		result := newScorer(nil, score.WithThreshold(53)).Score(decode(t,
			`{"@context":"https://schema.org","@type":"Article","headline":"T","author":{"@type":"Person","name":"X"}}`))

		assert.True(t, result.Passed)
		assert.Empty(t, result.RejectionReason)
	})
}

func TestScorer_PriorityBonus(t *testing.T) {
	t.Parallel()

	obj := decode(t, `{"@context":"https://schema.org","@type":"HowTo","name":"N","step":[{"@type":"HowToStep","text":"t"}]}`)

	with := newScorer(nil).Score(obj)
	without := newScorer([]schemaorg.Option{schemaorg.WithPriorityTypes()}).Score(obj)

	assert.InDelta(t, 10.0, with.Score-without.Score, 1e-6)
	assert.Zero(t, without.Breakdown.AIPriorityBonus)
}

func TestScorer_ConformityMonotonic(t *testing.T) {
	t.Parallel()

	obj := map[string]any{"@context": "https://schema.org", "@type": "Article"}
	prev := newScorer(nil).Score(obj).Breakdown.GoogleConformity
	for _, prop := range []string{"headline", "image", "datePublished", "author"} {
		obj[prop] = "x"
		cur := newScorer(nil).Score(obj).Breakdown.GoogleConformity
		assert.GreaterOrEqual(t, cur, prev, "after adding %s", prop)
		prev = cur
	}
	assert.InDelta(t, 25.0, prev, 1e-9)
}

func TestScorer_Config(t *testing.T) {
	t.Parallel()

	t.Run("applies configured weights", func(t *testing.T) {
		t.Parallel()

		cfg := ldcurate.DefaultConfig().Scoring
		cfg.Weights.TypeSpecificity = 5
		cfg.NeutralConformity = 20
		cfg.PriorityBonus = 0

		result := newScorer(nil, score.WithConfig(cfg)).Score(decode(t,
			`{"@context":"https://schema.org","@type":"FAQPage","mainEntity":{"@type":"Question","name":"Q","acceptedAnswer":{"@type":"Answer","text":"A"}}}`))

		assert.InDelta(t, 5.0, result.Breakdown.TypeSpecificity, 1e-9)
		assert.Zero(t, result.Breakdown.AIPriorityBonus)

		result = newScorer(nil, score.WithConfig(cfg)).Score(decode(t,
			`{"@context":"https://schema.org","@type":"WidgetXYZ","a":1,"b":2,"c":3}`))

		assert.InDelta(t, 20.0, result.Breakdown.GoogleConformity, 1e-9)
	})

	t.Run("uses injected validator", func(t *testing.T) {
		t.Parallel()

		validator := &mock.Validator{
			ValidateFn: func(obj any) (bool, *ldcurate.ValidationDetails) {
				return false, &ldcurate.ValidationDetails{}
			},
		}
		registry := schemaorg.NewRegistry()

		result := score.New(validator, registry).Score(map[string]any{})

		assert.Equal(t, ldcurate.ReasonValidationFailed, result.RejectionReason)
		assert.Nil(t, result.Breakdown)
	})
}
