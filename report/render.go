package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/ldcurate"
)

// Output file names.
const (
	MarkdownFile = "validation_report.md"
	JSONFile     = "detailed_report.json"
)

const (
	histogramBarWidth = 50
	displayURLLength  = 60
)

// Markdown writes a human-readable report of the summary.
func Markdown(w io.Writer, s *ldcurate.Summary) error {
	var b strings.Builder

	b.WriteString("# JSON-LD Dataset Extraction Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s  \n", s.FinishedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**Duration:** %s\n\n", s.Duration().Round(time.Second))

	b.WriteString("## Executive Summary\n\n")
	b.WriteString("| Metric | Value | Percentage |\n|--------|-------|------------|\n")
	fmt.Fprintf(&b, "| Total URLs Scanned | %d | 100%% |\n", s.Total)
	fmt.Fprintf(&b, "| Accepted | %d | %.1f%% |\n", s.Accepted, percent(s.Accepted, s.Total))
	fmt.Fprintf(&b, "| Rejected | %d | %.1f%% |\n\n", s.Rejected, percent(s.Rejected, s.Total))

	b.WriteString("### Quality Metrics\n\n")
	fmt.Fprintf(&b, "- **Threshold:** %g/100\n", s.Threshold)
	fmt.Fprintf(&b, "- **Average Score (Accepted):** %.2f/100\n", s.Scores.Average)
	fmt.Fprintf(&b, "- **Median Score (Accepted):** %.2f/100\n", s.Scores.Median)
	fmt.Fprintf(&b, "- **Score Range (Accepted):** %.2f to %.2f\n", s.Scores.Min, s.Scores.Max)
	if s.Tokens > 0 {
		fmt.Fprintf(&b, "- **Dataset Size:** %d tokens\n", s.Tokens)
	}

	b.WriteString("\n## Acceptance Breakdown\n\n### By Score Range\n\n")
	b.WriteString("| Range | Count | Percentage |\n|-------|-------|------------|\n")
	fmt.Fprintf(&b, "| 90-100 (Excellent) | %d | %.1f%% |\n", s.ScoreRanges.Excellent, percent(s.ScoreRanges.Excellent, s.Accepted))
	fmt.Fprintf(&b, "| 80-89 (Good) | %d | %.1f%% |\n", s.ScoreRanges.Good, percent(s.ScoreRanges.Good, s.Accepted))

	b.WriteString("\n### By Schema Type (Top 10)\n\n")
	b.WriteString("| Schema Type | Count | Percentage |\n|-------------|-------|------------|\n")
	for _, c := range head(s.SchemaTypes, 10) {
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", c.Name, c.Count, percent(c.Count, s.Accepted))
	}

	b.WriteString("\n## Rejection Breakdown\n\n### By Reason\n\n")
	b.WriteString("| Reason | Count | Percentage |\n|--------|-------|------------|\n")
	for _, c := range s.RejectionReasons {
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", c.Name, c.Count, percent(c.Count, s.Rejected))
	}

	if len(s.CommonWarnings) > 0 {
		b.WriteString("\n### Common Issues\n\n")
		for _, c := range s.CommonWarnings {
			fmt.Fprintf(&b, "- **%s:** %d occurrences (%.1f%%)\n", c.Name, c.Count, percent(c.Count, s.Rejected))
		}
	}

	b.WriteString("\n## Top Scoring URLs\n\n")
	b.WriteString("| Rank | Score | Schema Type | URL |\n|------|-------|-------------|-----|\n")
	for i, u := range s.TopURLs {
		fmt.Fprintf(&b, "| %d | %.1f | %s | %s |\n", i+1, u.Score, u.SchemaType, displayURL(u.URL))
	}

	b.WriteString("\n## Score Distribution\n\n")
	writeHistogram(&b, s.Histogram)

	v := s.Validation
	b.WriteString("\n## Validation Statistics\n\n### Syntax Validation\n\n")
	fmt.Fprintf(&b, "- **Valid JSON-LD:** %d\n", v.ValidSyntax)
	fmt.Fprintf(&b, "- **Invalid JSON-LD:** %d\n", v.InvalidSyntax)
	b.WriteString("\n### Structure Validation\n\n")
	fmt.Fprintf(&b, "- **Valid Structure:** %d\n", v.ValidStructure)
	fmt.Fprintf(&b, "- **Missing @context:** %d\n", v.MissingContext)
	fmt.Fprintf(&b, "- **Missing @type:** %d\n", v.MissingType)
	b.WriteString("\n### Semantic Richness (Accepted URLs)\n\n")
	fmt.Fprintf(&b, "- **With @id:** %d (%.1f%%)\n", v.WithID, percent(v.WithID, s.Accepted))
	fmt.Fprintf(&b, "- **With sameAs:** %d (%.1f%%)\n", v.WithSameAs, percent(v.WithSameAs, s.Accepted))
	fmt.Fprintf(&b, "- **With Quality Links:** %d (%.1f%%)\n", v.WithQualityLinks, percent(v.WithQualityLinks, s.Accepted))
	fmt.Fprintf(&b, "- **Average Nesting Depth:** %.2f\n", v.AverageDepth)

	if len(s.Recommendations) > 0 {
		b.WriteString("\n## Recommendations\n\n")
		for _, r := range s.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHistogram(b *strings.Builder, buckets []ldcurate.Bucket) {
	if len(buckets) == 0 {
		b.WriteString("No accepted URLs.\n")
		return
	}
	peak := 0
	for _, bk := range buckets {
		peak = max(peak, bk.Count)
	}
	b.WriteString("```\n")
	for _, bk := range buckets {
		bar := strings.Repeat("█", bk.Count*histogramBarWidth/peak)
		fmt.Fprintf(b, "%3d-%-3d | %s %d\n", bk.Low, bk.High, bar, bk.Count)
	}
	b.WriteString("```\n")
}

// detailedReport is the layout of detailed_report.json.
type detailedReport struct {
	Metadata struct {
		GeneratedAt     time.Time `json:"generated_at"`
		StartTime       time.Time `json:"start_time"`
		EndTime         time.Time `json:"end_time"`
		DurationSeconds float64   `json:"duration_seconds"`
		DurationHours   float64   `json:"duration_hours"`
		Threshold       float64   `json:"threshold"`
	} `json:"metadata"`
	Summary struct {
		TotalURLs      int     `json:"total_urls"`
		AcceptedCount  int     `json:"accepted_count"`
		RejectedCount  int     `json:"rejected_count"`
		AcceptanceRate float64 `json:"acceptance_rate"`
		RejectionRate  float64 `json:"rejection_rate"`
		Tokens         int     `json:"tokens,omitempty"`
	} `json:"summary"`
	Scores           ldcurate.ScoreStats      `json:"scores"`
	ScoreRanges      ldcurate.ScoreRanges     `json:"score_ranges"`
	Histogram        []ldcurate.Bucket        `json:"histogram"`
	SchemaTypes      map[string]int           `json:"schema_types"`
	RejectionReasons map[string]int           `json:"rejection_reasons"`
	CommonWarnings   []ldcurate.Count         `json:"common_warnings"`
	TopURLs          []ldcurate.TopURL        `json:"top_urls"`
	Validation       ldcurate.ValidationStats `json:"validation"`
	Recommendations  []string                 `json:"recommendations"`
}

// JSON writes the detailed machine-readable report of the summary.
func JSON(w io.Writer, s *ldcurate.Summary) error {
	var r detailedReport
	r.Metadata.GeneratedAt = s.FinishedAt.UTC()
	r.Metadata.StartTime = s.StartedAt.UTC()
	r.Metadata.EndTime = s.FinishedAt.UTC()
	r.Metadata.DurationSeconds = s.Duration().Seconds()
	r.Metadata.DurationHours = s.Duration().Hours()
	r.Metadata.Threshold = s.Threshold

	r.Summary.TotalURLs = s.Total
	r.Summary.AcceptedCount = s.Accepted
	r.Summary.RejectedCount = s.Rejected
	r.Summary.AcceptanceRate = s.AcceptanceRate
	r.Summary.RejectionRate = s.RejectionRate()
	r.Summary.Tokens = s.Tokens

	r.Scores = s.Scores
	r.ScoreRanges = s.ScoreRanges
	r.Histogram = s.Histogram
	r.SchemaTypes = countMap(s.SchemaTypes)
	r.RejectionReasons = countMap(s.RejectionReasons)
	r.CommonWarnings = s.CommonWarnings
	r.TopURLs = s.TopURLs
	r.Validation = s.Validation
	r.Recommendations = s.Recommendations

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func countMap(counts []ldcurate.Count) map[string]int {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.Name] = c.Count
	}
	return m
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func head(counts []ldcurate.Count, n int) []ldcurate.Count {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

func displayURL(u string) string {
	if len(u) > displayURLLength {
		return u[:displayURLLength] + "..."
	}
	return u
}
