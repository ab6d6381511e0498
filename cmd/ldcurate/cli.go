package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config ldcurate.Config

	Registry  ldcurate.RuleRegistry
	Extractor ldcurate.Extractor
	Scorer    ldcurate.Scorer

	// Set only for the commands that need them.
	Scraper      *crawl.Scraper
	TokenCounter ldcurate.TokenCounter
	Discoverer   *crawl.Discoverer

	// Index receives a copy of every record when run --db is set.
	Index   ldcurate.RecordStore
	Records ldcurate.RecordService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"C" type:"path" help:"Config file (YAML). Defaults to $LDCURATE_CONFIG."`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Validate ValidateCmd `cmd:"" help:"Validate and score a JSON-LD or HTML file"`
	Run      RunCmd      `cmd:"" help:"Scrape, validate and score a list of URLs"`
	Discover DiscoverCmd `cmd:"" help:"Discover candidate URLs from domain sitemaps"`
	Types    TypesCmd    `cmd:"" help:"List known Schema.org types"`
	Records  RecordsCmd  `cmd:"" help:"Query records indexed by earlier runs"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON-LD or HTML file"`
	HTML bool   `help:"Treat the file as HTML and score every JSON-LD block (implied by .html/.htm)"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URLs        string `arg:"" name:"urls" type:"existingfile" help:"JSON or YAML list of URLs"`
	Out         string `short:"o" type:"path" help:"Output parent directory (default from config)"`
	Name        string `help:"Run directory name (default run-<timestamp>)"`
	Render      bool   `short:"r" help:"Render pages in a headless browser"`
	Concurrency int    `short:"c" help:"Concurrent fetch limit (default from config)"`
	Tokens      bool   `help:"Count dataset tokens with the Gemini tokenizer"`
	DB          string `type:"path" env:"LDCURATE_DB" help:"Also index records in this SQLite database"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	Domains string `arg:"" type:"existingfile" help:"JSON or YAML domain list"`
	Out     string `short:"o" type:"path" default:"discovered_urls.json" help:"Output file"`
}

// TypesCmd is the "types" subcommand.
type TypesCmd struct{}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	DB       string  `type:"existingfile" required:"" env:"LDCURATE_DB" help:"SQLite database written by run --db"`
	RunID    string  `name:"run" help:"Only records from this run ID"`
	Type     string  `help:"Only records of this Schema.org type"`
	Accepted bool    `xor:"verdict" help:"Only accepted records"`
	Rejected bool    `xor:"verdict" help:"Only rejected records"`
	MinScore float64 `help:"Only records scoring at least this much"`
	Limit    int     `short:"n" default:"20" help:"Maximum records to print (0 for all)"`
}
