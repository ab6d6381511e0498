package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/crawl"
	"github.com/fwojciec/ldcurate/gemini"
	"github.com/fwojciec/ldcurate/goquery"
	ldhttp "github.com/fwojciec/ldcurate/http"
	"github.com/fwojciec/ldcurate/rod"
	"github.com/fwojciec/ldcurate/schemaorg"
	"github.com/fwojciec/ldcurate/score"
	ldslog "github.com/fwojciec/ldcurate/slog"
	"github.com/fwojciec/ldcurate/sqlite"
	"github.com/fwojciec/ldcurate/validate"
	"github.com/fwojciec/ldcurate/yaml"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// ConfigEnv names the environment variable holding the default config path.
const ConfigEnv = "LDCURATE_CONFIG"

// Main represents the program.
type Main struct {
	// Config path used when --config is not given. Set before calling Run().
	ConfigPath string

	// HTTPClient is used for plain fetching, robots.txt and sitemaps.
	// Defaults to a client with the configured timeout.
	HTTPClient *http.Client

	// Services for end-to-end testing. Nil services are built from config.
	Fetcher      ldcurate.Fetcher
	TokenCounter ldcurate.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: os.Getenv(ConfigEnv),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ldcurate"),
		kong.Description("Curate a JSON-LD dataset by scraping, validating and scoring Schema.org markup."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ldcurate --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	configPath := cli.Config
	if configPath == "" {
		configPath = m.ConfigPath
	}
	cfg, err := yaml.NewLoader().Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", ldcurate.ErrorMessage(err))
		return err
	}
	deps.Config = cfg

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	registry := schemaorg.NewRegistry(schemaorg.WithPriorityTypes(cfg.Schema.PriorityTypes...))
	validator := validate.New(registry,
		validate.WithMinProperties(cfg.Schema.MinProperties),
		validate.WithQualityDomains(cfg.Schema.QualityDomains...),
		validate.WithMaxDepth(cfg.Schema.MaxNestingDepth),
	)
	deps.Registry = registry
	deps.Extractor = goquery.NewExtractor()
	deps.Scorer = score.New(validator, registry, score.WithConfig(cfg.Scoring))

	client := m.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Scrape.Timeout}
	}

	switch cmd {
	case "run":
		fetcher, err := m.fetcher(cfg.Scrape, cli.Run.Render, client)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		scraper := &crawl.Scraper{
			Fetcher:     ldslog.NewLoggingFetcher(fetcher, logger),
			RateLimiter: crawl.NewDomainLimiter(cfg.Scrape.RequestsPerSecond()),
			Extractor:   deps.Extractor,
			Scorer:      ldslog.NewLoggingScorer(deps.Scorer, logger),
			RetryDelays: cfg.Scrape.RetryDelays(),
			Retry: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		}
		if cfg.Scrape.RespectRobots {
			robots := ldhttp.NewRobotsChecker(client,
				ldhttp.WithRobotsUserAgent(cfg.Scrape.UserAgent),
				ldhttp.WithRobotsTTL(cfg.Scrape.RobotsCacheTTL),
			)
			scraper.Robots = ldslog.NewLoggingRobotsChecker(robots, logger)
		}
		deps.Scraper = scraper

		if cli.Run.DB != "" {
			db, err := openDB(cli.Run.DB)
			if err != nil {
				fmt.Fprintf(stderr, "error: %v\n", err)
				return err
			}
			defer db.Close()
			deps.Index = sqlite.NewRecordStore(db)
		}

		if cli.Run.Tokens {
			counter, err := m.tokenCounter()
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			deps.TokenCounter = counter
		}

	case "discover":
		sitemapClient := m.HTTPClient
		if sitemapClient == nil {
			sitemapClient = &http.Client{Timeout: cfg.Discovery.SitemapTimeout}
		}
		sitemaps := ldhttp.NewSitemapService(sitemapClient,
			ldhttp.WithSitemapPaths(cfg.Discovery.SitemapPaths...),
			ldhttp.WithMaxSitemapDepth(cfg.Discovery.MaxSitemapDepth),
			ldhttp.WithSitemapUserAgent(cfg.Scrape.UserAgent),
		)
		deps.Discoverer = &crawl.Discoverer{
			Sitemaps:    ldslog.NewLoggingSitemapService(sitemaps, logger),
			RateLimiter: crawl.NewDomainLimiter(rate(cfg.Discovery.RateLimitDelay)),
			Config:      cfg.Discovery,
			OnDomainError: func(domain ldcurate.Domain, err error) {
				logger.Warn("discover", "domain", domain.URL, "err", err)
			},
		}

	case "records":
		db, err := openDB(cli.Records.DB)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return err
		}
		defer db.Close()
		deps.Records = sqlite.NewRecordService(db)
	}

	return kongCtx.Run(deps)
}

// fetcher returns the injected fetcher, a headless browser when rendering
// is requested, or a plain HTTP fetcher.
func (m *Main) fetcher(cfg ldcurate.ScrapeConfig, render bool, client *http.Client) (ldcurate.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if render || cfg.Render {
		return rod.NewFetcher(
			rod.WithFetchTimeout(cfg.Timeout),
			rod.WithUserAgent(cfg.UserAgent),
		)
	}
	return ldhttp.NewFetcher(
		ldhttp.WithClient(client),
		ldhttp.WithUserAgent(cfg.UserAgent),
	), nil
}

func (m *Main) tokenCounter() (ldcurate.TokenCounter, error) {
	if m.TokenCounter != nil {
		return m.TokenCounter, nil
	}
	return gemini.NewTokenCounter(os.Getenv(gemini.ModelEnv))
}

// rate converts a per-request delay into requests per second.
func rate(delay time.Duration) float64 {
	return ldcurate.ScrapeConfig{RateLimitDelay: delay}.RequestsPerSecond()
}

func openDB(path string) (*sqlite.DB, error) {
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}
	return db, nil
}
