package ldcurate

import (
	"fmt"
	"strconv"
)

// ReasonValidationFailed is the rejection reason for structurally invalid input.
const ReasonValidationFailed = "validation_failed"

// ReasonScoreTooLow formats the rejection reason for a valid object
// whose score fell below the acceptance threshold.
func ReasonScoreTooLow(score, threshold float64) string {
	return fmt.Sprintf("score_too_low (%s/%s)", formatFloat(score), formatFloat(threshold))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ScoreBreakdown holds the contribution of each scoring component.
type ScoreBreakdown struct {
	Syntax           float64 `json:"syntax"`
	Completeness     float64 `json:"completeness"`
	GoogleConformity float64 `json:"google_conformity"`
	SemanticRichness float64 `json:"semantic_richness"`
	TypeSpecificity  float64 `json:"type_specificity"`
	AIPriorityBonus  float64 `json:"ai_priority_bonus"`
}

// Total returns the sum of all components.
func (b ScoreBreakdown) Total() float64 {
	return b.Syntax + b.Completeness + b.GoogleConformity +
		b.SemanticRichness + b.TypeSpecificity + b.AIPriorityBonus
}

// ScoreResult is the verdict for one structured-data object.
// Breakdown is nil when the object was rejected before scoring.
type ScoreResult struct {
	Score             float64            `json:"score"`
	Breakdown         *ScoreBreakdown    `json:"breakdown"`
	Passed            bool               `json:"passed"`
	ValidationDetails *ValidationDetails `json:"validation_details"`
	RejectionReason   string             `json:"rejection_reason,omitempty"`
}

// Scorer validates and scores structured data.
type Scorer interface {
	Score(obj any) *ScoreResult
}
