package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/onobori/chintai"
	"github.com/onobori/chintai/fs"
	"github.com/onobori/chintai/scrape"
	"github.com/onobori/chintai/web"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Properties chintai.PropertyService
	Scraper    *scrape.Scraper
	Suggester  chintai.Suggester
	Server     *web.Server
	Exporter   *fs.Exporter

	// Metrics collects the counters of the scraper and the server.
	Metrics *prometheus.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string `env:"CHINTAI_DB" default:"${default_db}" help:"SQLite database path"`
	DatabaseURL string `name:"database-url" env:"CHINTAI_DATABASE_URL" help:"PostgreSQL connection string; overrides --db"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`

	Scrape  ScrapeCmd  `cmd:"" help:"Scrape listing pages into the database"`
	Serve   ServeCmd   `cmd:"" help:"Serve the browsing interface"`
	Suggest SuggestCmd `cmd:"" help:"Suggest stations near a workplace"`
	Search  SearchCmd  `cmd:"" help:"Search stored properties"`
	Count   CountCmd   `cmd:"" help:"Show the number of stored properties"`
	Export  ExportCmd  `cmd:"" help:"Export stored properties as CSV"`
}

// Supported LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// LLMFlags configure the station suggestion provider.
type LLMFlags struct {
	Provider     string `enum:"openai,gemini" default:"openai" env:"CHINTAI_PROVIDER" help:"Suggestion provider (openai, gemini)"`
	Model        string `env:"CHINTAI_MODEL" help:"Model name; provider default when empty"`
	OpenAIAPIKey string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	GeminiAPIKey string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string        `default:"${default_url}" help:"Listing URL template; {page} is replaced by the page number"`
	Start    int           `default:"1" help:"First page to fetch"`
	Pages    int           `short:"n" default:"1" help:"Number of pages to fetch"`
	Interval time.Duration `default:"1s" help:"Minimum delay between page requests"`
	Timeout  time.Duration `default:"10s" help:"Per-request timeout"`

	MetricsFile string `name:"metrics-file" env:"CHINTAI_METRICS_FILE" help:"Write run counters in Prometheus text format to this file"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr     string `env:"CHINTAI_ADDR" default:":8080" help:"Listen address"`
	RedisURL string `name:"redis-url" env:"CHINTAI_REDIS_URL" help:"Redis URL for session state; in-memory when empty"`

	LLMFlags `embed:""`
}

// SuggestCmd is the "suggest" subcommand.
type SuggestCmd struct {
	Station string `arg:"" help:"Nearest station to the workplace"`
	Minutes int    `short:"m" default:"10" help:"Maximum commute in minutes (1-60)"`

	LLMFlags `embed:""`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	RentMin float64  `default:"0" help:"Minimum rent"`
	RentMax float64  `default:"250000" help:"Maximum rent"`
	FeeMin  float64  `default:"0" help:"Minimum management fee"`
	FeeMax  float64  `default:"50000" help:"Maximum management fee"`
	AgeMin  float64  `default:"0" help:"Minimum building age in years"`
	AgeMax  float64  `default:"50" help:"Maximum building age in years"`
	AreaMin float64  `default:"0" help:"Minimum area in m²"`
	AreaMax float64  `default:"200" help:"Maximum area in m²"`
	Layout  string   `default:"すべて" help:"Layout code, e.g. 1K or 2LDK"`
	Station []string `short:"s" help:"Station name (repeatable, up to 5)"`
	Limit   int      `default:"20" help:"Maximum rows to print; 0 prints all"`
	JSON    bool     `name:"json" help:"Print matching records as JSON"`
}

// CountCmd is the "count" subcommand.
type CountCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output string `arg:"" optional:"" default:"properties.csv" help:"Output CSV path"`
}
