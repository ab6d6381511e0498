// Package report aggregates run records into summary statistics and
// renders them as Markdown and JSON reports.
package report

import (
	"cmp"
	"math"
	"slices"

	"github.com/fwojciec/ldcurate"
	"github.com/montanaflynn/stats"
)

// Report sizes.
const (
	TopURLCount       = 20
	TopWarningCount   = 5
	HistogramWidth    = 5
	excellentScore    = 90.0
	goodScore         = 80.0
	unknownLabel      = "unknown"
	highRejectionRate = 0.5
	noDataShare       = 0.2
	averageHeadroom   = 5.0
)

// Summarize aggregates records into a Summary. Score statistics cover
// accepted records only. Run times and token totals are left for the
// caller to fill in.
func Summarize(records []*ldcurate.Record, threshold float64) *ldcurate.Summary {
	s := &ldcurate.Summary{
		Threshold:        threshold,
		Total:            len(records),
		SchemaTypes:      []ldcurate.Count{},
		RejectionReasons: []ldcurate.Count{},
		CommonWarnings:   []ldcurate.Count{},
		TopURLs:          []ldcurate.TopURL{},
		Histogram:        []ldcurate.Bucket{},
		Recommendations:  []string{},
	}

	var accepted, rejected []*ldcurate.Record
	for _, r := range records {
		if r.Passed {
			accepted = append(accepted, r)
		} else {
			rejected = append(rejected, r)
		}
	}
	s.Accepted = len(accepted)
	s.Rejected = len(rejected)
	if s.Total > 0 {
		s.AcceptanceRate = float64(s.Accepted) / float64(s.Total)
	}

	scores := make([]float64, len(accepted))
	for i, r := range accepted {
		scores[i] = r.Score
	}
	s.Scores = describe(scores)
	s.ScoreRanges = ranges(scores)
	s.Histogram = histogram(scores)

	s.SchemaTypes = tally(accepted, func(r *ldcurate.Record) []string {
		return []string{labelOr(r.SchemaType)}
	}, 0)
	s.RejectionReasons = tally(rejected, func(r *ldcurate.Record) []string {
		return []string{labelOr(r.RejectionReason)}
	}, 0)
	s.CommonWarnings = tally(rejected, structureWarnings, TopWarningCount)
	s.TopURLs = topURLs(accepted, TopURLCount)
	s.Validation = validationStats(records, accepted)
	s.Recommendations = recommend(s)
	return s
}

// describe computes descriptive statistics; an empty input yields zeros.
func describe(data stats.Float64Data) ldcurate.ScoreStats {
	if data.Len() == 0 {
		return ldcurate.ScoreStats{}
	}
	var out ldcurate.ScoreStats
	out.Average, _ = stats.Mean(data)
	out.Median, _ = stats.Median(data)
	out.Min, _ = stats.Min(data)
	out.Max, _ = stats.Max(data)
	out.StdDev, _ = stats.StandardDeviation(data)
	for _, f := range []*float64{&out.Average, &out.Median, &out.Min, &out.Max, &out.StdDev} {
		*f = round2(*f)
	}
	return out
}

func ranges(scores []float64) ldcurate.ScoreRanges {
	var r ldcurate.ScoreRanges
	for _, score := range scores {
		switch {
		case score >= excellentScore:
			r.Excellent++
		case score >= goodScore:
			r.Good++
		}
	}
	return r
}

// histogram buckets scores into HistogramWidth-point bars, highest first.
func histogram(scores []float64) []ldcurate.Bucket {
	counts := map[int]int{}
	for _, score := range scores {
		low := int(math.Floor(score/HistogramWidth)) * HistogramWidth
		counts[low]++
	}

	buckets := make([]ldcurate.Bucket, 0, len(counts))
	for low, n := range counts {
		buckets = append(buckets, ldcurate.Bucket{Low: low, High: low + HistogramWidth - 1, Count: n})
	}
	slices.SortFunc(buckets, func(a, b ldcurate.Bucket) int {
		return cmp.Compare(b.Low, a.Low)
	})
	return buckets
}

// tally counts the labels produced for each record, most frequent first
// and alphabetical among equals. A positive limit keeps that many.
func tally(records []*ldcurate.Record, labels func(*ldcurate.Record) []string, limit int) []ldcurate.Count {
	counts := map[string]int{}
	for _, r := range records {
		for _, l := range labels(r) {
			counts[l]++
		}
	}

	out := make([]ldcurate.Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, ldcurate.Count{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b ldcurate.Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func structureWarnings(r *ldcurate.Record) []string {
	d := r.ValidationDetails
	if d == nil || d.Structure == nil {
		return nil
	}
	var out []string
	for _, w := range d.Structure.Warnings() {
		out = append(out, w.Message)
	}
	return out
}

func topURLs(accepted []*ldcurate.Record, n int) []ldcurate.TopURL {
	sorted := slices.Clone(accepted)
	slices.SortStableFunc(sorted, func(a, b *ldcurate.Record) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]ldcurate.TopURL, len(sorted))
	for i, r := range sorted {
		out[i] = ldcurate.TopURL{URL: r.URL, Score: r.Score, SchemaType: labelOr(r.SchemaType)}
	}
	return out
}

func validationStats(all, accepted []*ldcurate.Record) ldcurate.ValidationStats {
	var v ldcurate.ValidationStats
	for _, r := range all {
		d := r.ValidationDetails
		if d != nil && d.Syntax != nil && d.Syntax.Valid {
			v.ValidSyntax++
		} else {
			v.InvalidSyntax++
		}
		if d == nil || d.Structure == nil {
			continue
		}
		if d.Structure.Valid {
			v.ValidStructure++
		}
		for _, e := range d.Structure.Errors() {
			switch e.Code {
			case ldcurate.CodeMissingContext:
				v.MissingContext++
			case ldcurate.CodeMissingType:
				v.MissingType++
			}
		}
	}

	var depths stats.Float64Data
	for _, r := range accepted {
		if r.ValidationDetails == nil || r.ValidationDetails.Richness == nil {
			continue
		}
		rich := r.ValidationDetails.Richness
		if rich.HasID {
			v.WithID++
		}
		if rich.HasSameAs {
			v.WithSameAs++
		}
		if rich.HasQualityLinks {
			v.WithQualityLinks++
		}
		depths = append(depths, float64(rich.NestedDepth))
	}
	if depths.Len() > 0 {
		mean, _ := depths.Mean()
		v.AverageDepth = round2(mean)
	}
	return v
}

func recommend(s *ldcurate.Summary) []string {
	out := []string{}
	if s.Total == 0 {
		return out
	}
	if s.RejectionRate() > highRejectionRate {
		out = append(out, "High rejection rate: consider adjusting the score threshold or improving URL sources.")
	}
	for _, c := range s.RejectionReasons {
		if c.Name == ldcurate.ReasonNoJSONLD && float64(c.Count) > float64(s.Total)*noDataShare {
			out = append(out, "Many URLs without JSON-LD: run discovery with a higher min_pre_score to filter pages before scraping.")
		}
	}
	if s.Accepted > 0 && s.Scores.Average < s.Threshold+averageHeadroom {
		out = append(out, "Average accepted score is close to the threshold: favor sources with more complete Schema.org markup.")
	}
	return out
}

func labelOr(s string) string {
	if s == "" {
		return unknownLabel
	}
	return s
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
