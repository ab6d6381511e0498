package ldcurate

import "context"

// ContentTypeExcluded marks a URL rejected by the exclusion rules.
const ContentTypeExcluded = "excluded"

// ContentTypeUnknown marks a URL with no recognizable content type.
const ContentTypeUnknown = "unknown"

// PreScore ranks a URL's likelihood of carrying useful structured data
// before it is fetched. Score ranges 0-100.
type PreScore struct {
	URL         string            `json:"url"`
	Score       float64           `json:"pre_score"`
	Breakdown   PreScoreBreakdown `json:"breakdown"`
	ContentType string            `json:"content_type"`
	Excluded    bool              `json:"excluded,omitempty"`
}

// PreScoreBreakdown holds the components of a PreScore.
type PreScoreBreakdown struct {
	PatternMatch     float64 `json:"pattern_match"`
	DepthOptimal     float64 `json:"depth_optimal"`
	URLCleanliness   float64 `json:"url_cleanliness"`
	SitemapPriority  float64 `json:"sitemap_priority"`
	ContentTypeBonus float64 `json:"content_type_bonus"`
}

// Candidate is a discovered URL queued for scraping.
type Candidate struct {
	PreScore

	LastMod             string   `json:"lastmod,omitempty"`
	Source              string   `json:"source"`
	Domain              string   `json:"domain"`
	Tier                string   `json:"tier"`
	Language            string   `json:"language,omitempty"`
	Category            string   `json:"category,omitempty"`
	ExpectedSchemaTypes []string `json:"expected_schema_types,omitempty"`
}

// DomainList is the input of discovery: domains grouped by category.
type DomainList struct {
	Categories map[string]DomainCategory `json:"categories" yaml:"categories"`
}

// DomainCategory groups domains sharing URL patterns and expected types.
type DomainCategory struct {
	Domains             []Domain `json:"domains" yaml:"domains"`
	PriorityPatterns    []string `json:"priority_patterns" yaml:"priority_patterns"`
	ExpectedSchemaTypes []string `json:"expected_schema_types" yaml:"expected_schema_types"`

	// MaxURLsPerTier overrides the configured per-tier caps for this category.
	MaxURLsPerTier map[string]int `json:"max_urls_per_tier,omitempty" yaml:"max_urls_per_tier"`
}

// Domain is a site to discover URLs from.
type Domain struct {
	URL      string `json:"url" yaml:"url"`
	Tier     string `json:"tier" yaml:"tier"`
	Language string `json:"language" yaml:"language"`
}

// Len returns the number of domains across all categories.
func (l *DomainList) Len() int {
	var n int
	for _, c := range l.Categories {
		n += len(c.Domains)
	}
	return n
}

// URLSource discovers scrape candidates for a list of domains.
type URLSource interface {
	Discover(ctx context.Context, domains *DomainList) ([]Candidate, error)
}
