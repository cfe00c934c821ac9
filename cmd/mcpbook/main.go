package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/tcsenpai/mcpbook"
	"github.com/tcsenpai/mcpbook/crawl"
	"github.com/tcsenpai/mcpbook/goquery"
	"github.com/tcsenpai/mcpbook/htmltomarkdown"
	mcphttp "github.com/tcsenpai/mcpbook/http"
	mcpslog "github.com/tcsenpai/mcpbook/slog"
	"github.com/tcsenpai/mcpbook/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PageService mcpbook.PageStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("mcpbook"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mcpbook --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	level := slog.LevelInfo
	if cli.Quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MCPBOOK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.PageService = sqlite.NewPageService(m.DB)
	deps.DB = m.DB
	deps.Pages = mcpslog.NewLoggingPageStore(m.PageService, logger)

	if cmd == "scrape" || cmd == "serve" {
		if cli.URL == "" {
			return mcpbook.Errorf(mcpbook.EINVALID, "documentation URL not set. Pass --url or set MCPBOOK_URL")
		}

		cfg := mcpbook.DefaultConfig(cli.URL)
		if cmd == "scrape" {
			cfg.MaxConcurrent = cli.Scrape.Concurrency
			if cli.Scrape.Force {
				cfg.CacheTTL = 0
			}
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		fetcher := mcpslog.NewLoggingFetcher(mcphttp.NewFetcher(mcphttp.WithTimeout(cfg.RequestTimeout)), logger)
		defer fetcher.Close()

		deps.Crawler = &crawl.Crawler{
			Config:    cfg,
			Fetcher:   fetcher,
			Extractor: goquery.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
			Links:     goquery.NewLinkExtractor(nil),
			Store:     deps.Pages,
			Sitemap:   mcphttp.NewSitemapService(nil),
			Logger:    logger,
		}
		if !cli.Quiet {
			deps.Crawler.Progress = func(discovered, completed, failed int) {
				fmt.Fprintf(stderr, "\rcrawling: %d/%d pages (%d failing)", completed, discovered, failed)
			}
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("MCPBOOK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "mcpbook.db"
	}
	dir := filepath.Join(home, ".mcpbook")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "mcpbook.db")
}
