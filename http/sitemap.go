package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/ldcurate"
)

// MaxSitemapSize caps how much of a sitemap is read, after decompression.
const MaxSitemapSize = 50 << 20

// DefaultMaxSitemapDepth limits how many sitemap index levels are followed.
const DefaultMaxSitemapDepth = 3

// Ensure SitemapService implements ldcurate.SitemapService.
var _ ldcurate.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client    *http.Client
	paths     []string
	maxDepth  int
	userAgent string
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithSitemapPaths sets the paths probed when robots.txt declares no sitemap.
func WithSitemapPaths(paths ...string) SitemapOption {
	return func(s *SitemapService) {
		s.paths = paths
	}
}

// WithMaxSitemapDepth limits how many sitemap index levels are followed.
func WithMaxSitemapDepth(n int) SitemapOption {
	return func(s *SitemapService) {
		s.maxDepth = n
	}
}

// WithSitemapUserAgent sets the User-Agent header for sitemap requests.
func WithSitemapUserAgent(ua string) SitemapOption {
	return func(s *SitemapService) {
		s.userAgent = ua
	}
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{
		client:    client,
		paths:     ldcurate.DefaultConfig().Discovery.SitemapPaths,
		maxDepth:  DefaultMaxSitemapDepth,
		userAgent: ldcurate.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs finds all URLs from a site's sitemap.
// Returns an empty slice (not nil) if no sitemaps are found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) ([]string, error) {
	entries, err := s.DiscoverEntries(ctx, baseURL, filter)
	if err != nil {
		return nil, err
	}
	urls := make([]string, len(entries))
	for i, e := range entries {
		urls[i] = e.URL
	}
	return urls, nil
}

// DiscoverEntries finds all sitemap entries of a site, keeping their
// priority and last modification date. Returns an empty slice (not nil)
// if no sitemaps are found.
//
// When baseURL has a non-root path (e.g., https://example.com/blog/),
// only URLs with paths starting with that prefix are returned.
func (s *SitemapService) DiscoverEntries(ctx context.Context, baseURL string, filter *ldcurate.URLFilter) ([]ldcurate.SitemapEntry, error) {
	// Check for context cancellation early
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, ldcurate.Errorf(ldcurate.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	// Extract path prefix for filtering (empty or "/" means no prefix filtering)
	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	// For sitemap discovery, use the root of the domain (strip any path)
	sitemapBase := *base
	sitemapBase.Path = ""
	sitemapBase.RawQuery = ""
	sitemapBase.Fragment = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, &sitemapBase)
	if err != nil {
		return nil, err
	}

	entries := []ldcurate.SitemapEntry{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, sitemapURL := range sitemapURLs {
		found, err := s.processSitemap(ctx, sitemapURL, 0, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, e := range found {
			if seenURLs[e.URL] {
				continue
			}
			seenURLs[e.URL] = true
			if pathPrefix != "" && !matchesPathPrefix(e.URL, pathPrefix) {
				continue
			}
			if !filter.Match(e.URL) {
				continue
			}
			entries = append(entries, e)
		}
	}

	return entries, nil
}

// matchesPathPrefix checks if a URL's path starts with the given prefix,
// respecting path boundaries: /blog matches /blog/ and /blog/post but not
// /blogroll.
func matchesPathPrefix(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path+"/", prefix)
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to
// the first common sitemap path that exists.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	for _, path := range s.paths {
		sitemapURL := base.ResolveReference(&url.URL{Path: path})
		exists, err := s.urlExists(ctx, sitemapURL.String())
		if err != nil {
			// Propagate context errors, treat other errors as "not found"
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if exists {
			return []string{sitemapURL.String()}, nil
		}
	}

	return nil, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Case-insensitive check for Sitemap: directive
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[len("sitemap:"):])
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and
// sitemapindex. Index levels deeper than maxDepth are not followed.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, depth int, seen map[string]bool) ([]ldcurate.SitemapEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Avoid processing the same sitemap twice
	if seen[sitemapURL] || depth > s.maxDepth {
		return nil, nil
	}
	seen[sitemapURL] = true

	root, err := s.fetchSitemap(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, depth, seen)
	}

	return parseURLSet(root), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
// Child sitemaps that fail to load are skipped.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, depth int, seen map[string]bool) ([]ldcurate.SitemapEntry, error) {
	var all []ldcurate.SitemapEntry

	for _, sitemap := range root.SelectElements("sitemap") {
		sitemapURL := childText(sitemap, "loc")
		if sitemapURL == "" {
			continue
		}

		entries, err := s.processSitemap(ctx, sitemapURL, depth+1, seen)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		all = append(all, entries...)
	}

	return all, nil
}

// parseURLSet extracts entries from a <urlset> element.
func parseURLSet(root *etree.Element) []ldcurate.SitemapEntry {
	var entries []ldcurate.SitemapEntry
	for _, urlEl := range root.SelectElements("url") {
		loc := childText(urlEl, "loc")
		if loc == "" {
			continue
		}
		entries = append(entries, ldcurate.SitemapEntry{
			URL:      loc,
			Priority: parsePriority(childText(urlEl, "priority")),
			LastMod:  childText(urlEl, "lastmod"),
		})
	}
	return entries
}

// parsePriority reads a <priority> value, clamped to [0, 1]. Missing or
// malformed values use the sitemap protocol default.
func parsePriority(s string) float64 {
	if s == "" {
		return ldcurate.DefaultSitemapPriority
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ldcurate.DefaultSitemapPriority
	}
	return min(max(p, 0), 1)
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// fetchSitemap downloads and parses a sitemap document. Gzip bodies are
// detected by their magic bytes and decompressed.
func (s *SitemapService) fetchSitemap(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	br := bufio.NewReader(body)
	var r io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("decompressing sitemap %s: %w", sitemapURL, err)
		}
		defer gz.Close()
		r = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(io.LimitReader(r, MaxSitemapSize)); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML %s: %w", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML %s", sitemapURL)
	}
	return root, nil
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &ldcurate.StatusError{URL: targetURL, StatusCode: resp.StatusCode}
	}
	if resp.ContentLength > MaxSitemapSize {
		resp.Body.Close()
		return nil, fmt.Errorf("sitemap %s too large: %d bytes", targetURL, resp.ContentLength)
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapService) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
