package ldcurate

import "time"

// Default configuration values.
const (
	DefaultThreshold          = 80.0
	DefaultPriorityBonus      = 10.0
	DefaultMinProperties      = 3
	DefaultMaxNestingDepth    = 64
	DefaultUserAgent          = "ldcurate/1.0 (+https://github.com/fwojciec/ldcurate; structured data research)"
	DefaultCheckpointInterval = 100
	DefaultMinPreScore        = 40.0
)

// Config holds every tunable of the system. The scoring engine consumes
// Scoring and Schema; the scraping and discovery layers consume the rest.
type Config struct {
	Scoring   ScoringConfig   `yaml:"scoring"`
	Schema    SchemaConfig    `yaml:"schema"`
	Scrape    ScrapeConfig    `yaml:"scrape"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Output    OutputConfig    `yaml:"output"`
}

// ScoringConfig holds the composite scorer's caps and threshold.
type ScoringConfig struct {
	Threshold     float64 `yaml:"threshold"`
	Weights       Weights `yaml:"weights"`
	PriorityBonus float64 `yaml:"priority_bonus"`

	// WarningPenalty is subtracted from the syntax component per syntax warning.
	WarningPenalty float64 `yaml:"warning_penalty"`

	// NeutralConformity is awarded when a type has no required properties.
	NeutralConformity float64 `yaml:"neutral_conformity"`

	// PropertyMultiplier scales the property count when a type has no
	// applicable required or recommended properties.
	PropertyMultiplier float64 `yaml:"property_multiplier"`
}

// Weights are the caps of the five capped scoring components.
type Weights struct {
	Syntax           float64 `yaml:"syntax"`
	Completeness     float64 `yaml:"completeness"`
	GoogleConformity float64 `yaml:"google_conformity"`
	SemanticRichness float64 `yaml:"semantic_richness"`
	TypeSpecificity  float64 `yaml:"type_specificity"`
}

// SchemaConfig holds validation inputs that are not part of the rule table.
type SchemaConfig struct {
	PriorityTypes   []string `yaml:"priority_types"`
	QualityDomains  []string `yaml:"quality_domains"`
	MinProperties   int      `yaml:"min_properties"`
	MaxNestingDepth int      `yaml:"max_nesting_depth"`
}

// ScrapeConfig controls fetching politeness and concurrency.
type ScrapeConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	RateLimitDelay time.Duration `yaml:"rate_limit_delay"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	UserAgent      string        `yaml:"user_agent"`
	RespectRobots  bool          `yaml:"respect_robots"`
	RobotsCacheTTL time.Duration `yaml:"robots_cache_ttl"`
	Concurrency    int           `yaml:"concurrency"`
	Render         bool          `yaml:"render"`
}

// RetryDelays expands MaxRetries and RetryDelay into a delay schedule.
func (c ScrapeConfig) RetryDelays() []time.Duration {
	delays := make([]time.Duration, c.MaxRetries)
	for i := range delays {
		delays[i] = c.RetryDelay
	}
	return delays
}

// RequestsPerSecond converts RateLimitDelay into a per-domain rate.
// A zero delay means no limit.
func (c ScrapeConfig) RequestsPerSecond() float64 {
	if c.RateLimitDelay <= 0 {
		return 0
	}
	return float64(time.Second) / float64(c.RateLimitDelay)
}

// DiscoveryConfig controls sitemap discovery and URL pre-scoring.
type DiscoveryConfig struct {
	MinPreScore     float64        `yaml:"min_pre_score"`
	MaxURLsPerTier  map[string]int `yaml:"max_urls_per_tier"`
	SitemapPaths    []string       `yaml:"sitemap_paths"`
	MaxSitemapDepth int            `yaml:"max_sitemap_depth"`
	SitemapTimeout  time.Duration  `yaml:"sitemap_timeout"`
	RateLimitDelay  time.Duration  `yaml:"rate_limit_delay"`
	Concurrency     int            `yaml:"concurrency"`
}

// TierLimit returns the URL cap for a domain tier. Unknown tiers use the
// "standard" cap.
func (c DiscoveryConfig) TierLimit(tier string) int {
	if n, ok := c.MaxURLsPerTier[tier]; ok {
		return n
	}
	return c.MaxURLsPerTier[TierStandard]
}

// OutputConfig controls where results land.
type OutputConfig struct {
	Dir                string `yaml:"dir"`
	CheckpointInterval int    `yaml:"checkpoint_interval"`
}

// Domain tiers used by discovery.
const (
	TierGold     = "gold"
	TierHigh     = "high"
	TierStandard = "standard"
)

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Scoring: ScoringConfig{
			Threshold: DefaultThreshold,
			Weights: Weights{
				Syntax:           15,
				Completeness:     30,
				GoogleConformity: 25,
				SemanticRichness: 20,
				TypeSpecificity:  10,
			},
			PriorityBonus:      DefaultPriorityBonus,
			WarningPenalty:     2,
			NeutralConformity:  15,
			PropertyMultiplier: 3,
		},
		Schema: SchemaConfig{
			PriorityTypes: []string{
				"FAQPage", "HowTo", "Article", "NewsArticle",
				"Product", "Organization", "QAPage",
			},
			QualityDomains: []string{
				"wikidata.org", "wikipedia.org", "linkedin.com",
				"facebook.com", "twitter.com", "instagram.com", "youtube.com",
			},
			MinProperties:   DefaultMinProperties,
			MaxNestingDepth: DefaultMaxNestingDepth,
		},
		Scrape: ScrapeConfig{
			Timeout:        15 * time.Second,
			RateLimitDelay: 2 * time.Second,
			MaxRetries:     2,
			RetryDelay:     2 * time.Second,
			UserAgent:      DefaultUserAgent,
			RespectRobots:  true,
			RobotsCacheTTL: time.Hour,
			Concurrency:    4,
		},
		Discovery: DiscoveryConfig{
			MinPreScore: DefaultMinPreScore,
			MaxURLsPerTier: map[string]int{
				TierGold:     100,
				TierHigh:     50,
				TierStandard: 30,
			},
			SitemapPaths: []string{
				"/sitemap.xml",
				"/sitemap_index.xml",
				"/sitemap-index.xml",
				"/post-sitemap.xml",
				"/page-sitemap.xml",
				"/product-sitemap.xml",
				"/recipe-sitemap.xml",
				"/article-sitemap.xml",
				"/news-sitemap.xml",
			},
			MaxSitemapDepth: 3,
			SitemapTimeout:  10 * time.Second,
			RateLimitDelay:  time.Second,
			Concurrency:     4,
		},
		Output: OutputConfig{
			Dir:                "output",
			CheckpointInterval: DefaultCheckpointInterval,
		},
	}
}

// Validate returns an EINVALID error describing the first invalid field.
func (c Config) Validate() error {
	s := c.Scoring
	if s.Threshold < 0 {
		return Errorf(EINVALID, "scoring.threshold must not be negative, got %v", s.Threshold)
	}
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"syntax", s.Weights.Syntax},
		{"completeness", s.Weights.Completeness},
		{"google_conformity", s.Weights.GoogleConformity},
		{"semantic_richness", s.Weights.SemanticRichness},
		{"type_specificity", s.Weights.TypeSpecificity},
	} {
		if w.value < 0 {
			return Errorf(EINVALID, "scoring.weights.%s must not be negative, got %v", w.name, w.value)
		}
	}
	if s.PriorityBonus < 0 || s.WarningPenalty < 0 || s.PropertyMultiplier < 0 {
		return Errorf(EINVALID, "scoring bonus, penalty and multiplier must not be negative")
	}
	if s.NeutralConformity < 0 || s.NeutralConformity > s.Weights.GoogleConformity {
		return Errorf(EINVALID, "scoring.neutral_conformity must be between 0 and weights.google_conformity, got %v", s.NeutralConformity)
	}
	if c.Schema.MinProperties < 0 {
		return Errorf(EINVALID, "schema.min_properties must not be negative, got %d", c.Schema.MinProperties)
	}
	if c.Schema.MaxNestingDepth < 1 {
		return Errorf(EINVALID, "schema.max_nesting_depth must be at least 1, got %d", c.Schema.MaxNestingDepth)
	}
	if c.Scrape.Timeout <= 0 {
		return Errorf(EINVALID, "scrape.timeout must be positive, got %s", c.Scrape.Timeout)
	}
	if c.Scrape.RateLimitDelay < 0 || c.Scrape.RetryDelay < 0 || c.Scrape.RobotsCacheTTL < 0 {
		return Errorf(EINVALID, "scrape delays must not be negative")
	}
	if c.Scrape.MaxRetries < 0 {
		return Errorf(EINVALID, "scrape.max_retries must not be negative, got %d", c.Scrape.MaxRetries)
	}
	if c.Scrape.Concurrency < 1 {
		return Errorf(EINVALID, "scrape.concurrency must be at least 1, got %d", c.Scrape.Concurrency)
	}
	if c.Scrape.UserAgent == "" {
		return Errorf(EINVALID, "scrape.user_agent must not be empty")
	}
	d := c.Discovery
	if d.MinPreScore < 0 || d.MinPreScore > 100 {
		return Errorf(EINVALID, "discovery.min_pre_score must be between 0 and 100, got %v", d.MinPreScore)
	}
	for tier, n := range d.MaxURLsPerTier {
		if n < 0 {
			return Errorf(EINVALID, "discovery.max_urls_per_tier.%s must not be negative, got %d", tier, n)
		}
	}
	if d.MaxSitemapDepth < 0 {
		return Errorf(EINVALID, "discovery.max_sitemap_depth must not be negative, got %d", d.MaxSitemapDepth)
	}
	if d.Concurrency < 1 {
		return Errorf(EINVALID, "discovery.concurrency must be at least 1, got %d", d.Concurrency)
	}
	if c.Output.CheckpointInterval < 0 {
		return Errorf(EINVALID, "output.checkpoint_interval must not be negative, got %d", c.Output.CheckpointInterval)
	}
	return nil
}
