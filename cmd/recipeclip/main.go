package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/recipeclip/recipeclip"
	"github.com/recipeclip/recipeclip/goquery"
	"github.com/recipeclip/recipeclip/htmltomarkdown"
	recipehttp "github.com/recipeclip/recipeclip/http"
	"github.com/recipeclip/recipeclip/pipeline"
	"github.com/recipeclip/recipeclip/rod"
	recipeslog "github.com/recipeclip/recipeclip/slog"
	"github.com/recipeclip/recipeclip/sqlite"
	"github.com/recipeclip/recipeclip/trafilatura"
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

	// SQLite database used by the pattern store.
	DB *sqlite.DB

	// Pattern service for end-to-end testing.
	PatternService recipeclip.PatternService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
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
		kong.Name("recipeclip"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'recipeclip --help' to see available commands")
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

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set RECIPECLIP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.PatternService = recipeslog.NewLoggingPatternService(sqlite.NewPatternService(m.DB), logger)
	deps.DB = m.DB
	deps.Patterns = m.PatternService

	if cmd == "import" {
		selector, cleanup, err := m.buildSelector(cli, logger, stderr)
		if err != nil {
			return err
		}
		defer cleanup()
		deps.Selector = selector
	}

	return kongCtx.Run(deps)
}

// buildSelector wires the extraction pipeline for the import command.
func (m *Main) buildSelector(cli *CLI, logger *slog.Logger, stderr io.Writer) (*pipeline.Selector, func(), error) {
	fetcher := recipehttp.NewFetcher(recipehttp.WithTimeout(cli.Import.Timeout))
	recipeFetcher := recipehttp.NewRecipeFetcher(recipehttp.NewRetryFetcher(fetcher))
	converter := htmltomarkdown.NewConverter()
	registry := goquery.NewRegistry()

	appState := goquery.NewAppStateCarrier()
	nextData := goquery.NewNextDataCarrier()
	structured := goquery.NewStructuredDataCarrier()
	meta := goquery.NewMetaCarrier()

	parsers := map[recipeclip.SiteType]recipeclip.SiteParser{
		recipeclip.SiteRecipeSite: goquery.NewRecipeSiteParser(recipeFetcher, converter),
	}

	structuredStrategy := pipeline.NewStructuredDataStrategy(structured, parsers)
	structuredStrategy.Image = goquery.MetaImage

	metaStrategy := pipeline.NewCarrierStrategy(recipeclip.StrategyMetaTags, meta)
	metaStrategy.Image = goquery.MetaImage

	domStrategy := pipeline.NewDOMStrategy(registry)
	domStrategy.Text = trafilatura.NewExtractor()
	domStrategy.Image = goquery.MetaImage

	selector := &pipeline.Selector{
		Fetcher: fetcher,
		Executors: map[recipeclip.Strategy]recipeclip.StrategyExecutor{
			recipeclip.StrategyAppState:       pipeline.NewCarrierStrategy(recipeclip.StrategyAppState, appState),
			recipeclip.StrategyNextData:       pipeline.NewCarrierStrategy(recipeclip.StrategyNextData, nextData),
			recipeclip.StrategyStructuredData: structuredStrategy,
			recipeclip.StrategyMetaTags:       metaStrategy,
			recipeclip.StrategyDOM:            domStrategy,
			recipeclip.StrategyOEmbed:         pipeline.NewOEmbedStrategy(recipehttp.NewOEmbedClient()),
			recipeclip.StrategyOCR:            pipeline.NewOCRStrategy(nil),
		},
		Patterns:     m.PatternService,
		Fingerprints: goquery.NewFingerprinter(),
		Config:       recipeclip.DefaultParserConfig(),
		Limiter:      pipeline.NewDomainLimiter(cli.Import.RPS),
		Logger:       logger,
	}

	cleanup := func() {
		selector.Flush()
		_ = fetcher.Close()
	}

	if cli.Import.NoBrowser {
		return selector, cleanup, nil
	}

	renderer, err := rod.NewRenderer(
		rod.WithRenderTimeout(cli.Import.Timeout),
		rod.WithSettleDelay(cli.Import.Settle),
		rod.WithStealth(),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --no-browser")
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}

	selector.Renderer = rod.NewLoggingRenderer(renderer, logger)
	domStrategy.Renderer = selector.Renderer

	cleanup = func() {
		selector.Flush()
		_ = renderer.Close()
		_ = fetcher.Close()
	}
	return selector, cleanup, nil
}

func defaultDBPath() string {
	if path := os.Getenv("RECIPECLIP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "recipeclip.db"
	}
	dir := filepath.Join(home, ".recipeclip")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "recipeclip.db")
}
