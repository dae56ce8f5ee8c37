// Command jobmcp scrapes a JobKorea listing page through the Bright Data
// MCP server, which renders the page remotely and returns markdown, and
// extracts its job listings.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jobkorea/fs"
	"github.com/fwojciec/jobkorea/markdown"
	jkmcp "github.com/fwojciec/jobkorea/mcp"
	"github.com/fwojciec/jobkorea/scrape"
	jkslog "github.com/fwojciec/jobkorea/slog"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Artifact names written to the output directory.
const (
	RawName    = "scraped_data.md"
	OutputName = "jobs_mcp.json"
)

// PlaceholderToken is the value shipped in the example .env file.
const PlaceholderToken = "your_token_here"

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
	// EnvFile is loaded into the environment before flags are parsed.
	// Variables already set are not overridden. Empty disables loading.
	EnvFile string

	// Transport, when set, replaces the server process started by
	// --command and --package.
	Transport mcp.Transport
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{EnvFile: ".env"}
}

// Run executes the CLI with the given arguments. Only usage errors are
// returned; scrape failures are reported on stderr.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobmcp"),
		kong.Description("Scrape a JobKorea listing page through the Bright Data MCP server"),
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

	if err := loadEnv(m.EnvFile); err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.Token == "" || cli.Token == PlaceholderToken {
		fmt.Fprintln(stderr, "error: BRIGHT_DATA_API_TOKEN is not set in .env or environment variables.")
		fmt.Fprintln(stderr, "Hint: Set it in the .env file or pass --token with your Bright Data API token")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, cli.Timeout)
	defer cancel()

	logger := newLogger(stderr, cli.Verbose)

	opts := []jkmcp.Option{
		jkmcp.WithCommand(cli.Command, "-y", cli.Package),
		jkmcp.WithTool(cli.Tool),
	}
	if m.Transport != nil {
		opts = append(opts, jkmcp.WithTransport(m.Transport))
	}
	fetcher := jkslog.NewLoggingFetcher(jkmcp.NewFetcher(cli.Token, opts...), logger)
	defer fetcher.Close()

	cfg := markdown.DefaultConfig()
	if cli.SkipOrphans {
		cfg.OnNestedTitle = markdown.NestedTitleSkip
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Runner: &scrape.Runner{
			Fetcher:    fetcher,
			Extractor:  jkslog.NewLoggingExtractor(markdown.NewExtractor(cfg), logger),
			Artifacts:  jkslog.NewLoggingArtifactStore(fs.NewStore(cli.OutDir), logger),
			RawName:    RawName,
			OutputName: OutputName,
		},
	}

	cmd := &ScrapeCmd{URL: cli.URL}
	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Token       string        `env:"BRIGHT_DATA_API_TOKEN" help:"Bright Data API token"`
	Command     string        `default:"npx" help:"Command that launches the MCP server"`
	Package     string        `default:"@brightdata/mcp" help:"MCP server package passed to the command"`
	Tool        string        `default:"scrape_as_markdown" help:"Scraping tool to call"`
	Timeout     time.Duration `default:"2m" help:"Overall timeout including server startup"`
	OutDir      string        `short:"o" default:"." help:"Directory for scraped_data.md and jobs_mcp.json"`
	SkipOrphans bool          `help:"Drop titles whose company lookahead runs into another title"`
	Verbose     bool          `short:"v" help:"Log progress to stderr"`
	URL         string        `arg:"" required:"" help:"JobKorea listing URL"`
}

// loadEnv loads path with godotenv. A missing file is not an error; the
// token may come from the real environment.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
