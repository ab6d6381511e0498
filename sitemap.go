package ldcurate

import (
	"context"
	"regexp"
	"slices"
)

// DefaultSitemapPriority is assumed for sitemap entries without <priority>.
const DefaultSitemapPriority = 0.5

// SitemapEntry is one <url> element of a sitemap.
type SitemapEntry struct {
	URL      string  `json:"url"`
	Priority float64 `json:"priority"`
	LastMod  string  `json:"lastmod,omitempty"`
}

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap.
	// If filter is nil, all URLs are returned.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)

	// DiscoverEntries is like DiscoverURLs but keeps each entry's
	// priority and last modification date.
	DiscoverEntries(ctx context.Context, baseURL string, filter *URLFilter) ([]SitemapEntry, error)
}

// URLFilter narrows discovered URLs by pattern. A nil filter passes
// everything.
type URLFilter struct {
	// Include, when non-empty, keeps only URLs matching one of its patterns.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any of its patterns, after Include.
	Exclude []*regexp.Regexp
}

// Match reports whether url passes the filter.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	matches := func(re *regexp.Regexp) bool { return re.MatchString(url) }
	if len(f.Include) > 0 && !slices.ContainsFunc(f.Include, matches) {
		return false
	}
	return !slices.ContainsFunc(f.Exclude, matches)
}
