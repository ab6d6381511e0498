// Package prescore ranks discovered URLs by how likely they are to carry
// rich structured data, using only the URL and its sitemap priority.
package prescore

import (
	"cmp"
	"math"
	"net/url"
	"slices"
	"strings"

	"github.com/fwojciec/ldcurate"
)

// Patterns that suggest help or guide content in any language.
var universalPatterns = []string{
	"/faq", "/foire-aux-questions", "/questions-frequentes",
	"/aide", "/help", "/support",
	"/how-to", "/guide", "/tutoriel", "/tutorial",
}

type contentPatterns struct {
	contentType string
	patterns    []string
}

// Content types in detection order; the first match wins.
var contentTypes = []contentPatterns{
	{"faq", []string{"/faq", "/questions", "/q-a", "/aide", "/help"}},
	{"howto", []string{"/how-to", "/guide", "/tutorial", "/tutoriel", "/tuto"}},
	{"article", []string{"/article", "/blog", "/post", "/news", "/actualites"}},
	{"product", []string{"/product", "/p/", "/dp/", "/item/", "/produit"}},
	{"recipe", []string{"/recipe", "/recette", "/recipes", "/cooking"}},
	{"job", []string{"/job", "/jobs", "/emploi", "/career", "/careers"}},
	{"event", []string{"/event", "/events", "/evenement", "/salon"}},
}

// Content types worth the full bonus.
var priorityContentTypes = []string{"faq", "howto", "article", "recipe"}

var excludePatterns = []string{
	"/tag/", "/tags/", "/author/", "/authors/", "/auteur/",
	"/category/", "/categories/", "/categorie/", "/page/", "/p/",
	"/search", "/recherche", "/login", "/signin", "/register",
	"/cart", "/checkout", "/panier",
	"/wp-content/", "/wp-admin/", "/feed/", "/rss/",
	".pdf", ".jpg", ".png", ".gif", ".zip",
	"/cdn-cgi/", "/api/",
}

var ignoreExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp",
	".zip", ".tar", ".gz", ".rar",
	".mp3", ".mp4", ".avi", ".mov",
	".css", ".js", ".xml", ".json",
}

var trackingIndicators = []string{"sessionid", "sid", "utm_", "fbclid", "gclid"}

// Component caps.
const (
	maxPatternMatch   = 40
	maxUniversal      = 30
	maxCategory       = 15
	maxCleanliness    = 15
	maxSitemapPoints  = 15
	optimalDepthMin   = 1
	optimalDepthMax   = 4
	homepageDepth     = 5
	fallbackComponent = 5
)

// Score computes the pre-score of rawURL. Excluded URLs score zero with
// content type ldcurate.ContentTypeExcluded.
func Score(rawURL string, sitemapPriority float64, categoryPatterns []string) ldcurate.PreScore {
	if Excluded(rawURL) {
		return ldcurate.PreScore{
			URL:         rawURL,
			ContentType: ldcurate.ContentTypeExcluded,
			Excluded:    true,
		}
	}

	b := ldcurate.PreScoreBreakdown{
		PatternMatch:     round2(patternMatch(rawURL, categoryPatterns)),
		DepthOptimal:     round2(depth(rawURL)),
		URLCleanliness:   round2(cleanliness(rawURL)),
		SitemapPriority:  round2(sitemapPriority * maxSitemapPoints),
		ContentTypeBonus: round2(contentTypeBonus(rawURL)),
	}
	total := b.PatternMatch + b.DepthOptimal + b.URLCleanliness + b.SitemapPriority + b.ContentTypeBonus

	return ldcurate.PreScore{
		URL:         rawURL,
		Score:       round2(total),
		Breakdown:   b,
		ContentType: ContentType(rawURL),
	}
}

// ContentType guesses the kind of page from URL patterns. It returns
// ldcurate.ContentTypeUnknown when nothing matches.
func ContentType(rawURL string) string {
	u := strings.ToLower(rawURL)
	for _, ct := range contentTypes {
		if containsAny(u, ct.patterns) {
			return ct.contentType
		}
	}
	return ldcurate.ContentTypeUnknown
}

// Excluded reports whether rawURL points at listing, account, asset or
// API pages that never carry useful structured data.
func Excluded(rawURL string) bool {
	u := strings.ToLower(rawURL)
	if containsAny(u, excludePatterns) {
		return true
	}
	for _, ext := range ignoreExtensions {
		if strings.HasSuffix(u, ext) {
			return true
		}
	}
	return false
}

// Filter pre-scores sitemap entries and returns those scoring at least
// minScore, highest first, at most maxURLs of them. Ties keep input
// order. A negative maxURLs means no limit.
func Filter(entries []ldcurate.SitemapEntry, categoryPatterns []string, minScore float64, maxURLs int) []ldcurate.Candidate {
	out := make([]ldcurate.Candidate, 0, len(entries))
	for _, e := range entries {
		ps := Score(e.URL, e.Priority, categoryPatterns)
		if ps.Excluded || ps.Score < minScore {
			continue
		}
		out = append(out, ldcurate.Candidate{
			PreScore: ps,
			LastMod:  e.LastMod,
			Source:   "sitemap",
		})
	}

	slices.SortStableFunc(out, func(a, b ldcurate.Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if maxURLs >= 0 && len(out) > maxURLs {
		out = out[:maxURLs]
	}
	return out
}

func patternMatch(rawURL string, categoryPatterns []string) float64 {
	u := strings.ToLower(rawURL)
	var score float64

	if n := countMatches(u, universalPatterns); n > 0 {
		score += math.Min(float64(n)*15, maxUniversal)
	}

	if ContentType(rawURL) != ldcurate.ContentTypeUnknown {
		score += 10
	}

	var n int
	for _, p := range categoryPatterns {
		if p != "" && strings.Contains(u, strings.ToLower(p)) {
			n++
		}
	}
	if n > 0 {
		score += math.Min(float64(n)*5, maxCategory)
	}

	return math.Min(score, maxPatternMatch)
}

func depth(rawURL string) float64 {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallbackComponent
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return homepageDepth
	}

	d := strings.Count(path, "/") + 1
	switch {
	case d >= optimalDepthMin && d <= optimalDepthMax:
		return 20
	case d < optimalDepthMin:
		return 10
	default:
		return math.Max(0, 15-float64(d-optimalDepthMax)*3)
	}
}

func cleanliness(rawURL string) float64 {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallbackComponent
	}
	score := float64(maxCleanliness)

	switch n := queryParams(u.RawQuery); {
	case n == 0:
	case n <= 2:
		score -= 3
	default:
		score -= 8
	}

	if u.Fragment != "" {
		score -= 2
	}

	switch {
	case len(rawURL) > 200:
		score -= 5
	case len(rawURL) > 150:
		score -= 3
	}

	if containsAny(strings.ToLower(rawURL), trackingIndicators) {
		score -= 5
	}

	return math.Max(0, score)
}

// queryParams counts distinct query keys that carry a non-blank value.
func queryParams(rawQuery string) int {
	values, _ := url.ParseQuery(rawQuery)
	var n int
	for _, vs := range values {
		if slices.ContainsFunc(vs, func(v string) bool { return v != "" }) {
			n++
		}
	}
	return n
}

func contentTypeBonus(rawURL string) float64 {
	ct := ContentType(rawURL)
	switch {
	case slices.Contains(priorityContentTypes, ct):
		return 10
	case ct != ldcurate.ContentTypeUnknown:
		return 5
	default:
		return 0
	}
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func countMatches(s string, patterns []string) int {
	var n int
	for _, p := range patterns {
		if strings.Contains(s, p) {
			n++
		}
	}
	return n
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
