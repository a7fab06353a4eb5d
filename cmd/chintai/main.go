package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/onobori/chintai"
	"github.com/onobori/chintai/fs"
	"github.com/onobori/chintai/gemini"
	"github.com/onobori/chintai/goquery"
	chhttp "github.com/onobori/chintai/http"
	"github.com/onobori/chintai/inmem"
	chopenai "github.com/onobori/chintai/openai"
	"github.com/onobori/chintai/postgres"
	chprom "github.com/onobori/chintai/prometheus"
	chredis "github.com/onobori/chintai/redis"
	"github.com/onobori/chintai/scrape"
	chslog "github.com/onobori/chintai/slog"
	"github.com/onobori/chintai/sqlite"
	"github.com/onobori/chintai/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Closers run in reverse order when Run returns.
	closers []func() error
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases every resource opened by Run.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
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
		kong.Name("chintai"),
		kong.Description("Scrape Tokyo rental listings and browse them with station suggestions."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{
			"default_db":  defaultDBPath(),
			"default_url": chintai.DefaultListingURL,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'chintai --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Properties, err = m.openStore(ctx, cli)
	if err != nil {
		if cli.DatabaseURL == "" {
			fmt.Fprintf(stderr, "Hint: Set CHINTAI_DB to use a different database path\n")
		}
		return err
	}

	deps.Metrics = prometheus.NewRegistry()
	metrics := chprom.NewMetrics(deps.Metrics)

	switch strings.Fields(kongCtx.Command())[0] {
	case "export":
		deps.Exporter = fs.NewExporter("")

	case "scrape":
		deps.Scraper = m.newScraper(cli.Scrape, deps.Properties, deps.Logger)
		deps.Scraper.Observer = metrics

	case "suggest":
		deps.Suggester, err = newSuggester(ctx, cli.Suggest.LLMFlags, deps.Logger)
		if err != nil {
			return err
		}

	case "serve":
		suggester, err := newSuggester(ctx, cli.Serve.LLMFlags, deps.Logger)
		if err != nil {
			return err
		}
		selections, err := m.newSelectionStore(ctx, cli.Serve.RedisURL)
		if err != nil {
			return err
		}

		deps.Server = &web.Server{
			Properties:     deps.Properties,
			Suggester:      suggester,
			Selections:     selections,
			Observer:       metrics,
			MetricsHandler: promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}),
			Logger:         deps.Logger,
		}
	}

	return kongCtx.Run(deps)
}

// openStore opens Postgres when a database URL is configured and the SQLite
// file otherwise.
func (m *Main) openStore(ctx context.Context, cli *CLI) (chintai.PropertyService, error) {
	if cli.DatabaseURL != "" {
		db := postgres.NewDB(cli.DatabaseURL)
		if err := db.Open(ctx); err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		m.closers = append(m.closers, db.Close)
		return postgres.NewPropertyService(db), nil
	}

	if dir := filepath.Dir(cli.DB); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}
	db := sqlite.NewDB(cli.DB)
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	m.closers = append(m.closers, db.Close)
	return sqlite.NewPropertyService(db), nil
}

func (m *Main) newScraper(cmd ScrapeCmd, props chintai.PropertyService, logger *slog.Logger) *scrape.Scraper {
	fetcher := chhttp.NewFetcher(chhttp.WithTimeout(cmd.Timeout))
	m.closers = append(m.closers, fetcher.Close)

	var limiter scrape.Limiter
	if cmd.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(cmd.Interval), 1)
	}

	return &scrape.Scraper{
		Fetcher:    chslog.NewLoggingFetcher(fetcher, logger),
		Parser:     chslog.NewLoggingParser(goquery.NewListingParser(), logger),
		Properties: props,
		Limiter:    limiter,
		Logger:     logger,
	}
}

func (m *Main) newSelectionStore(ctx context.Context, redisURL string) (chintai.SelectionStore, error) {
	if redisURL == "" {
		return inmem.NewSelectionStore(), nil
	}
	client, err := chredis.Open(ctx, redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	m.closers = append(m.closers, client.Close)
	return chredis.NewSelectionStore(client), nil
}

// newSuggester builds the configured LLM provider wrapped with logging.
func newSuggester(ctx context.Context, flags LLMFlags, logger *slog.Logger) (chintai.Suggester, error) {
	var s chintai.Suggester
	switch flags.Provider {
	case ProviderGemini:
		if flags.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  flags.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		s = gemini.NewSuggester(client, flags.Model)

	default:
		if flags.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set. Get a key at https://platform.openai.com/api-keys")
		}
		client := chopenai.NewClient(flags.OpenAIAPIKey, chopenai.WithLogger(logger))
		s = chopenai.NewSuggester(client, chopenai.WithModel(flags.Model))
	}
	return chslog.NewLoggingSuggester(s, logger), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "chintai.db"
	}
	return filepath.Join(home, ".chintai", "chintai.db")
}
