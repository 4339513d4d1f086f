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
	"github.com/fwojciec/wikicollect"
	"github.com/fwojciec/wikicollect/export"
	"github.com/fwojciec/wikicollect/fs"
	"github.com/fwojciec/wikicollect/goquery"
	"github.com/fwojciec/wikicollect/htmltomarkdown"
	"github.com/fwojciec/wikicollect/mediawiki"
	"github.com/fwojciec/wikicollect/s3"
	wcslog "github.com/fwojciec/wikicollect/slog"
	"github.com/fwojciec/wikicollect/sqlite"
	"github.com/fwojciec/wikicollect/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the export ledger.
	DB *sqlite.DB

	// Services for end-to-end testing. When set they replace the
	// MediaWiki client and the configured dataset publisher.
	Fetcher   wikicollect.ContentFetcher
	Searcher  wikicollect.Searcher
	Publisher wikicollect.DatasetPublisher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("wikicollect"),
		kong.Description("Collect Wikipedia article text for search terms as NDJSON."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wikicollect --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	cfg, err := LoadConfig(cli.EnvFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", wikicollect.ErrorMessage(err))
		return err
	}
	deps.Config = cfg
	deps.Logger = newLogger(stderr, cli.Verbose)

	if err := m.wire(ctx, strings.Fields(kongCtx.Command())[0], cli, deps); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", wikicollect.ErrorMessage(err))
		return err
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wire builds the services the selected command needs.
func (m *Main) wire(ctx context.Context, cmd string, cli *CLI, deps *Dependencies) error {
	cfg := deps.Config

	switch cmd {
	case "search":
		searcher, err := m.searcher(cfg, cli.Search.Language)
		if err != nil {
			return err
		}
		deps.Searcher = wcslog.NewLoggingSearcher(searcher, deps.Logger)
		deps.SearchWriter = yaml.NewMetadataStore(cfg.SearchesDir(), cfg.BlacklistPath())

	case "fetch":
		deps.Metadata = yaml.NewMetadataStore(cfg.SearchesDir(), cfg.BlacklistPath())
		if cli.Fetch.Preview {
			return nil
		}

		fetcher, err := m.fetcher(cfg, cli.Fetch.Language, cli.Fetch.Format)
		if err != nil {
			return err
		}
		if err := m.openDB(cfg); err != nil {
			return err
		}
		deps.Exporter = &export.Exporter{
			Fetcher:     wcslog.NewLoggingFetcher(fetcher, deps.Logger),
			Artifacts:   fs.NewArtifactStore(cfg.DataDir),
			Exports:     sqlite.NewExportService(m.DB),
			Logger:      deps.Logger,
			Concurrency: cli.Fetch.Concurrency,
		}

	case "exports":
		if err := m.openDB(cfg); err != nil {
			return err
		}
		deps.Exports = sqlite.NewExportService(m.DB)

	case "dataset":
		publisher, err := m.publisher(ctx, cfg, cli.Dataset.Push)
		if err != nil {
			return err
		}
		deps.Publisher = wcslog.NewLoggingPublisher(publisher, deps.Logger)
	}

	return nil
}

func (m *Main) searcher(cfg *Config, language string) (wikicollect.Searcher, error) {
	if m.Searcher != nil {
		return m.Searcher, nil
	}
	return m.client(cfg, language)
}

func (m *Main) fetcher(cfg *Config, language string, format wikicollect.ContentFormat) (wikicollect.ContentFetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	var opts []mediawiki.Option
	if format == wikicollect.FormatMarkdown {
		opts = append(opts, mediawiki.WithMarkdown(goquery.NewCleaner(), htmltomarkdown.NewConverter()))
	}
	return m.client(cfg, language, opts...)
}

func (m *Main) client(cfg *Config, language string, opts ...mediawiki.Option) (*mediawiki.Client, error) {
	userAgent, err := cfg.UserAgent()
	if err != nil {
		return nil, err
	}
	if language == "" {
		language = cfg.Language
	}
	if language == "" {
		language = mediawiki.DefaultLanguage
	}
	opts = append([]mediawiki.Option{mediawiki.WithLanguage(language)}, opts...)
	return mediawiki.NewClient(userAgent, opts...)
}

func (m *Main) publisher(ctx context.Context, cfg *Config, push bool) (wikicollect.DatasetPublisher, error) {
	if m.Publisher != nil {
		return m.Publisher, nil
	}
	if !push {
		return fs.NewDatasetWriter(cfg.DatasetsDir()), nil
	}
	if cfg.S3Bucket == "" {
		return nil, wikicollect.Errorf(wikicollect.ECONFIG, "WIKICOLLECT_S3_BUCKET must be set to push datasets")
	}
	client, err := s3.NewClient(ctx, cfg.AWSRegion, cfg.S3Endpoint)
	if err != nil {
		return nil, err
	}
	return s3.NewPublisher(client, cfg.S3Bucket, cfg.S3Prefix), nil
}

func (m *Main) openDB(cfg *Config) error {
	path := cfg.LedgerPath()
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return wikicollect.WrapError(wikicollect.ECONFIG, err, "open export ledger %s (set WIKICOLLECT_DB to use a different path)", path)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
