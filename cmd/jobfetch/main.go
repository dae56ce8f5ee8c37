// Command jobfetch fetches a JobKorea listing page directly and extracts
// its job listings.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jobkorea"
	"github.com/fwojciec/jobkorea/fs"
	"github.com/fwojciec/jobkorea/goquery"
	"github.com/fwojciec/jobkorea/htmltomarkdown"
	jkhttp "github.com/fwojciec/jobkorea/http"
	"github.com/fwojciec/jobkorea/markdown"
	"github.com/fwojciec/jobkorea/nextjs"
	"github.com/fwojciec/jobkorea/rod"
	"github.com/fwojciec/jobkorea/scrape"
	jkslog "github.com/fwojciec/jobkorea/slog"
)

// Artifact names written to the output directory.
const (
	RawName    = "debug.html"
	OutputName = "jobs.json"
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
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. Only usage errors are
// returned; scrape failures are reported on stderr.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobfetch"),
		kong.Description("Fetch a JobKorea listing page and extract its jobs to JSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URL provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	fetcher, err := newFetcher(cli)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to use --render")
		return nil
	}
	defer fetcher.Close()

	deps.Runner = &scrape.Runner{
		Fetcher:    jkslog.NewLoggingFetcher(fetcher, logger),
		Extractor:  jkslog.NewLoggingExtractor(newChain(cli.MarkdownFallback, logger), logger),
		Artifacts:  jkslog.NewLoggingArtifactStore(fs.NewStore(cli.OutDir), logger),
		RawName:    RawName,
		OutputName: OutputName,
	}

	cmd := &FetchCmd{
		URL:    cli.URL,
		Render: cli.Render,
	}

	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	OutDir           string        `short:"o" default:"." help:"Directory for debug.html and jobs.json"`
	Timeout          time.Duration `short:"t" default:"20s" help:"Fetch timeout"`
	Render           bool          `help:"Render the page in headless Chrome before extracting"`
	MarkdownFallback bool          `help:"Try markdown heuristics when HTML strategies find nothing"`
	Verbose          bool          `short:"v" help:"Log progress to stderr"`
	URL              string        `arg:"" required:"" help:"JobKorea listing URL"`
}

func newFetcher(cli *CLI) (jobkorea.Fetcher, error) {
	if cli.Render {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithUserAgent(jkhttp.DefaultHeaders["User-Agent"]),
		)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return jkhttp.NewFetcher(jkhttp.WithTimeout(cli.Timeout)), nil
}

// newChain returns the HTML strategies in priority order: listing markup,
// then hydration data, then optionally markdown heuristics over the
// converted page. Each strategy logs its own skipped items under its name.
func newChain(markdownFallback bool, logger *slog.Logger) *jobkorea.Chain {
	strategy := func(name string, e jobkorea.Extractor) jobkorea.Strategy {
		return jobkorea.Strategy{
			Name:      name,
			Extractor: jkslog.NewLoggingExtractor(e, logger.With("strategy", name)),
		}
	}

	strategies := []jobkorea.Strategy{
		strategy("static", goquery.NewListingExtractor()),
		strategy("nextjs", nextjs.NewExtractor()),
	}
	if markdownFallback {
		strategies = append(strategies, strategy("markdown", &jobkorea.ConvertedExtractor{
			Converter: htmltomarkdown.NewConverter(),
			Extractor: markdown.NewExtractor(markdown.DefaultConfig()),
		}))
	}
	return jobkorea.NewChain(strategies...)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
