package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/jobkorea"
	"github.com/fwojciec/jobkorea/scrape"
)

// Run executes the scrape command. Failures are reported on stderr and do
// not produce an error, so the process exits cleanly.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Connecting to Bright Data MCP server...")
	fmt.Fprintf(deps.Stdout, "Fetching %s via remote browser...\n", c.URL)

	progress := func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressFetched:
			fmt.Fprintf(deps.Stdout, "Received %d bytes of markdown\n", e.Bytes)
		case scrape.ProgressRawSaved:
			fmt.Fprintf(deps.Stdout, "Saved raw markdown to %s\n", e.Artifact.Path)
		}
	}

	res, err := deps.Runner.Run(deps.Ctx, c.URL, progress)
	if err != nil {
		if jobkorea.ErrorCode(err) == jobkorea.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Warning: No content returned from tool.")
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		if jobkorea.ErrorCode(err) == jobkorea.EUNAUTHORIZED {
			fmt.Fprintln(deps.Stderr, "Hint: Check that BRIGHT_DATA_API_TOKEN holds a valid token")
		}
		return nil
	}

	if len(res.Jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "Successfully scraped 0 jobs.")
		fmt.Fprintf(deps.Stderr, "Hint: Inspect %s; the listing layout may have changed\n", res.Raw.Path)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Successfully scraped %d jobs. Saved to %s\n", len(res.Jobs), res.Output.Path)
	return nil
}

// errorMessage returns the message of an application error, or the full
// error text for anything else.
func errorMessage(err error) string {
	var e *jobkorea.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
