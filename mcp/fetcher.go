// Package mcp provides a jobkorea.Fetcher that scrapes pages through a
// remote browser service exposed as a Model Context Protocol tool, such as
// the Bright Data MCP server.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/fwojciec/jobkorea"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Defaults for the Bright Data MCP server.
const (
	DefaultCommand = "npx"
	DefaultPackage = "@brightdata/mcp"
	DefaultTool    = "scrape_as_markdown"
)

// TokenEnv is the environment variable the server reads its API token from.
const TokenEnv = "API_TOKEN"

// Ensure Fetcher implements jobkorea.Fetcher at compile time.
var _ jobkorea.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages as markdown by calling a scraping tool on an MCP
// server. The server process is started on the first Fetch and stopped by
// Close.
type Fetcher struct {
	token     string
	command   string
	args      []string
	tool      string
	transport mcp.Transport
	client    *mcp.Client

	mu      sync.Mutex
	session *mcp.ClientSession
	closed  bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCommand sets the command that starts the MCP server.
// Defaults to "npx -y @brightdata/mcp".
func WithCommand(name string, args ...string) Option {
	return func(f *Fetcher) {
		f.command = name
		f.args = args
	}
}

// WithTool sets the name of the tool to call. Defaults to DefaultTool.
func WithTool(name string) Option {
	return func(f *Fetcher) {
		f.tool = name
	}
}

// WithTransport connects to the server over t instead of starting a
// process.
func WithTransport(t mcp.Transport) Option {
	return func(f *Fetcher) {
		f.transport = t
	}
}

// NewFetcher creates a new Fetcher that authenticates with token.
func NewFetcher(token string, opts ...Option) *Fetcher {
	f := &Fetcher{
		token:   token,
		command: DefaultCommand,
		args:    []string{"-y", DefaultPackage},
		tool:    DefaultTool,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = mcp.NewClient(&mcp.Implementation{Name: "jobkorea", Version: "v1.0.0"}, nil)
	return f
}

// Fetch calls the scraping tool for url and returns the concatenated text
// content of the result.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	session, err := f.connect(ctx)
	if err != nil {
		return "", err
	}

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      f.tool,
		Arguments: map[string]any{"url": url},
	})
	if err != nil {
		return "", fmt.Errorf("calling tool %s: %w", f.tool, err)
	}

	text := textContent(res.Content)
	if res.IsError {
		return "", jobkorea.Errorf(jobkorea.EINTERNAL, "tool %s failed: %s", f.tool, text)
	}
	if text == "" {
		return "", jobkorea.Errorf(jobkorea.ENOTFOUND, "no content returned from tool")
	}
	return text, nil
}

// connect returns the open session, starting the server if needed.
func (f *Fetcher) connect(ctx context.Context) (*mcp.ClientSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, jobkorea.Errorf(jobkorea.EINVALID, "fetcher is closed")
	}
	if f.session != nil {
		return f.session, nil
	}

	t := f.transport
	if t == nil {
		if f.token == "" {
			return nil, jobkorea.Errorf(jobkorea.EUNAUTHORIZED, "API token required")
		}
		cmd := exec.Command(f.command, f.args...)
		cmd.Env = append(os.Environ(), TokenEnv+"="+f.token)
		t = &mcp.CommandTransport{Command: cmd}
	}

	session, err := f.client.Connect(ctx, t, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to MCP server: %w", err)
	}
	f.session = session
	return session, nil
}

// Close ends the session and stops the server. Close is safe to call
// multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	if f.session == nil {
		return nil
	}
	return f.session.Close()
}

// textContent concatenates the text blocks of a tool result. Other content
// types are ignored.
func textContent(content []mcp.Content) string {
	var b strings.Builder
	for _, c := range content {
		if tc, ok := c.(*mcp.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}
