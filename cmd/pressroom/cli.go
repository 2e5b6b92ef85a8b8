package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/pressroom"
	"github.com/fwojciec/pressroom/publish"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Processor pressroom.ContentProcessor
	Estimator pressroom.ReadingTimeEstimator
	Checker   pressroom.ContentChecker
	Converter pressroom.Converter
	Articles  pressroom.ArticleService
	Importer  *publish.Importer

	// NewPageStore opens the output store for the build command.
	NewPageStore func(dir string) pressroom.PageStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool `short:"v" help:"Log debug output to stderr"`
	UniqueIDs bool `name:"unique-ids" help:"Suffix repeated heading ids with -1, -2, ..."`

	Process  ProcessCmd  `cmd:"" help:"Add heading anchors to an article"`
	Toc      TocCmd      `cmd:"" help:"Print an article's table of contents"`
	Readtime ReadtimeCmd `cmd:"" help:"Estimate an article's reading time"`
	Check    CheckCmd    `cmd:"" help:"Report broken anchors and heading problems"`
	Slug     SlugCmd     `cmd:"" help:"Generate unique heading ids for text"`
	Import   ImportCmd   `cmd:"" help:"Import articles from URLs or sitemaps"`
	List     ListCmd     `cmd:"" help:"List stored articles"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored article"`
	Build    BuildCmd    `cmd:"" help:"Publish all stored articles to a directory"`
}

// ProcessCmd is the "process" subcommand.
type ProcessCmd struct {
	File string `arg:"" default:"-" help:"HTML file, or - for stdin"`
	JSON bool   `name:"json" help:"Print content and table of contents as JSON"`
}

// TocCmd is the "toc" subcommand.
type TocCmd struct {
	File string `arg:"" default:"-" help:"HTML file, or - for stdin"`
	JSON bool   `name:"json" help:"Print entries as JSON"`
}

// ReadtimeCmd is the "readtime" subcommand.
type ReadtimeCmd struct {
	File string `arg:"" default:"-" help:"HTML file, or - for stdin"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	File string `arg:"" default:"-" help:"HTML file, or - for stdin"`
	Raw  bool   `help:"Check the input as-is instead of the processed article"`
}

// SlugCmd is the "slug" subcommand.
type SlugCmd struct {
	Texts []string `arg:"" help:"Heading texts; ids are unique across all arguments"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Article URLs, or sitemap/blog/index URLs with --sitemap or --index"`
	Sitemap     bool          `short:"s" xor:"mode" help:"Treat each URL as a sitemap or blog root"`
	Index       bool          `xor:"mode" help:"Treat each URL as an index page and import the posts it links to"`
	Include     []string      `short:"i" help:"Only import URLs matching regex (repeatable)"`
	Exclude     []string      `short:"x" help:"Skip URLs matching regex (repeatable)"`
	Extract     string        `short:"e" enum:"trafilatura,readability,none" default:"trafilatura" help:"Main content extractor (trafilatura, readability, none)"`
	Concurrency int           `short:"c" default:"10" help:"Concurrent fetch limit"`
	Rate        float64       `default:"2" help:"Requests per second per host (0 for unlimited)"`
	Timeout     time.Duration `default:"10s" help:"Per-request timeout"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Slug  string `arg:"" help:"Article slug"`
	Force bool   `help:"Confirm deletion"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Dir         string `arg:"" type:"path" help:"Output directory"`
	Markdown    bool   `default:"true" negatable:"" help:"Also write Markdown with frontmatter"`
	Concurrency int    `short:"c" default:"10" help:"Concurrent article limit"`
}

// readInput returns the contents of path, reading stdin for "-".
func readInput(deps *Dependencies, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(deps.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", pressroom.Errorf(pressroom.ENOTFOUND, "file %q not found", path)
		}
		return "", err
	}
	return string(b), nil
}
