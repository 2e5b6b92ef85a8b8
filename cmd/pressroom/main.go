package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pressroom"
	"github.com/fwojciec/pressroom/fs"
	"github.com/fwojciec/pressroom/goquery"
	prhtml "github.com/fwojciec/pressroom/html"
	"github.com/fwojciec/pressroom/htmltomarkdown"
	prhttp "github.com/fwojciec/pressroom/http"
	"github.com/fwojciec/pressroom/publish"
	"github.com/fwojciec/pressroom/readability"
	prslog "github.com/fwojciec/pressroom/slog"
	"github.com/fwojciec/pressroom/sqlite"
	"github.com/fwojciec/pressroom/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
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
	ArticleService pressroom.ArticleService
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
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pressroom"),
		kong.Description("Post-process, check and publish blog articles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pressroom --help' to see available commands")
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

	logger := newLogger(cli.Verbose, stderr)

	var opts []prhtml.Option
	if cli.UniqueIDs {
		opts = append(opts, prhtml.WithUniqueIDs())
	}
	deps.Logger = logger
	deps.Processor = prslog.NewLoggingProcessor(prhtml.NewProcessor(opts...), logger)
	deps.Estimator = prhtml.NewEstimator()
	deps.Checker = goquery.NewChecker()
	deps.Converter = prslog.NewLoggingConverter(htmltomarkdown.NewConverter(htmltomarkdown.WithHeadingIDs()), logger)
	deps.NewPageStore = newFileStore

	if needsDB(cmd) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PRESSROOM_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.ArticleService = sqlite.NewArticleService(m.DB)
		deps.Articles = m.ArticleService
	}

	if cmd == "import" {
		fetcher := prslog.NewLoggingFetcher(prhttp.NewFetcher(prhttp.WithTimeout(cli.Import.Timeout)), logger)
		defer fetcher.Close()

		deps.Importer = &publish.Importer{
			Sitemaps:    prslog.NewLoggingSitemapService(prhttp.NewSitemapService(&http.Client{Timeout: cli.Import.Timeout}), logger),
			Links:       goquery.NewLinkExtractor(),
			Fetcher:     fetcher,
			Extractor:   newExtractor(cli.Import.Extract),
			Articles:    deps.Articles,
			Limiter:     publish.NewHostLimiter(cli.Import.Rate),
			Concurrency: cli.Import.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func needsDB(cmd string) bool {
	switch cmd {
	case "import", "list", "delete", "build":
		return true
	}
	return false
}

// newLogger logs debug output to stderr in verbose mode and discards
// everything otherwise.
func newLogger(verbose bool, stderr io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newExtractor(name string) pressroom.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "none":
		return nil
	default:
		return trafilatura.NewExtractor()
	}
}

func newFileStore(dir string) pressroom.PageStore {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
}

func defaultDBPath() string {
	if path := os.Getenv("PRESSROOM_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pressroom.db"
	}
	dir := filepath.Join(home, ".pressroom")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pressroom.db")
}
