package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/crawl"
)

var (
	accent  = lipgloss.Color("#0EA5E9") // sky
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(18)
	passStyle  = lipgloss.NewStyle().Foreground(success).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(warning)
	dimStyle   = lipgloss.NewStyle().Foreground(dim)
)

// RenderSummary formats the outcome of a run for the terminal.
func RenderSummary(s *ldcurate.Summary, duplicates int, dir string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Run complete") + "\n\n")
	row(&b, "URLs", fmt.Sprintf("%d", s.Total))
	if duplicates > 0 {
		row(&b, "Duplicates", dimStyle.Render(fmt.Sprintf("%d skipped", duplicates)))
	}
	row(&b, "Accepted", passStyle.Render(fmt.Sprintf("%d (%.1f%%)", s.Accepted, s.AcceptanceRate*100)))
	row(&b, "Rejected", failStyle.Render(fmt.Sprintf("%d (%.1f%%)", s.Rejected, s.RejectionRate()*100)))
	if s.Accepted > 0 {
		row(&b, "Average score", fmt.Sprintf("%.2f (median %.2f)", s.Scores.Average, s.Scores.Median))
	}
	if s.Tokens > 0 {
		row(&b, "Dataset size", crawl.FormatTokens(s.Tokens))
	}
	row(&b, "Duration", s.Duration().Round(time.Second).String())
	row(&b, "Output", dir)

	for _, r := range s.Recommendations {
		b.WriteString("\n" + warnStyle.Render("! "+r))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderDiscovery formats the outcome of discovery for the terminal.
func RenderDiscovery(candidates []ldcurate.Candidate, path string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Discovery complete") + "\n\n")
	row(&b, "Candidates", passStyle.Render(fmt.Sprintf("%d", len(candidates))))

	domains := map[string]bool{}
	types := map[string]int{}
	for _, c := range candidates {
		domains[c.Domain] = true
		if c.ContentType != "" {
			types[c.ContentType]++
		}
	}
	row(&b, "Domains", fmt.Sprintf("%d", len(domains)))
	for _, t := range []string{"faq", "howto", "article", "product", "recipe", "job", "event"} {
		if n := types[t]; n > 0 {
			row(&b, "  "+t, fmt.Sprintf("%d", n))
		}
	}
	row(&b, "Output", path)

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label) + value + "\n")
}
