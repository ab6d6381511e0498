package crawl

import (
	"context"
	"fmt"
	"slices"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/prescore"
	"golang.org/x/sync/errgroup"
)

var _ ldcurate.URLSource = (*Discoverer)(nil)

// discoverOverfetch is how many sitemap entries per kept URL are read
// before pre-scoring narrows them down.
const discoverOverfetch = 3

// defaultLanguage labels domains listed without a language.
const defaultLanguage = "en"

// Discoverer finds scrape candidates by reading each domain's sitemaps and
// pre-scoring the URLs found there.
type Discoverer struct {
	Sitemaps    ldcurate.SitemapService
	RateLimiter ldcurate.DomainLimiter
	Config      ldcurate.DiscoveryConfig

	// Frontier orders and deduplicates candidates across domains. Defaults
	// to an in-memory Frontier sized for the URLs found.
	Frontier ldcurate.URLFrontier

	// OnDomainError, if set, is called for every domain whose sitemaps
	// could not be read. Discovery continues with the remaining domains.
	OnDomainError func(domain ldcurate.Domain, err error)
}

// discoverJob is one domain with the category it was listed under.
type discoverJob struct {
	category string
	config   ldcurate.DomainCategory
	domain   ldcurate.Domain
}

// Discover returns candidates for every domain in the list, highest
// pre-score first. Each domain keeps at most its tier's URL cap and URLs
// already found under another domain are dropped.
func (d *Discoverer) Discover(ctx context.Context, domains *ldcurate.DomainList) ([]ldcurate.Candidate, error) {
	if domains == nil {
		return nil, nil
	}
	jobs := d.jobs(domains)

	concurrency := d.Config.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([][]ldcurate.Candidate, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			candidates, err := d.discoverDomain(gctx, job)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				if d.OnDomainError != nil {
					d.OnDomainError(job.domain, err)
				}
				return nil
			}
			results[i] = candidates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	frontier := d.Frontier
	if frontier == nil {
		var n uint
		for _, r := range results {
			n += uint(len(r))
		}
		frontier = NewFrontier(n, frontierFalsePositiveRate)
	}
	for _, r := range results {
		for _, c := range r {
			frontier.Push(c)
		}
	}

	out := make([]ldcurate.Candidate, 0, frontier.Len())
	for {
		c, ok := frontier.Pop()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out, nil
}

// jobs flattens the domain list in a stable order: categories by name,
// domains in listed order.
func (d *Discoverer) jobs(domains *ldcurate.DomainList) []discoverJob {
	names := make([]string, 0, len(domains.Categories))
	for name := range domains.Categories {
		names = append(names, name)
	}
	slices.Sort(names)

	var jobs []discoverJob
	for _, name := range names {
		category := domains.Categories[name]
		for _, domain := range category.Domains {
			jobs = append(jobs, discoverJob{category: name, config: category, domain: domain})
		}
	}
	return jobs
}

func (d *Discoverer) discoverDomain(ctx context.Context, job discoverJob) ([]ldcurate.Candidate, error) {
	tier := job.domain.Tier
	if tier == "" {
		tier = ldcurate.TierStandard
	}
	language := job.domain.Language
	if language == "" {
		language = defaultLanguage
	}

	limit := d.Config.TierLimit(tier)
	if n, ok := job.config.MaxURLsPerTier[tier]; ok {
		limit = n
	}
	if limit <= 0 {
		return nil, nil
	}

	if d.RateLimiter != nil {
		if err := d.RateLimiter.Wait(ctx, DomainKey(job.domain.URL)); err != nil {
			return nil, err
		}
	}

	entries, err := d.Sitemaps.DiscoverEntries(ctx, job.domain.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", job.domain.URL, err)
	}
	if budget := limit * discoverOverfetch; len(entries) > budget {
		entries = entries[:budget]
	}

	candidates := prescore.Filter(entries, job.config.PriorityPatterns, d.Config.MinPreScore, limit)
	for i := range candidates {
		c := &candidates[i]
		c.Domain = job.domain.URL
		c.Tier = tier
		c.Language = language
		c.Category = job.category
		c.ExpectedSchemaTypes = job.config.ExpectedSchemaTypes
	}
	return candidates, nil
}
