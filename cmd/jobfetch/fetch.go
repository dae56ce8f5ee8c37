package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/jobkorea"
	"github.com/fwojciec/jobkorea/scrape"
)

// Run executes the fetch command. Failures are reported on stderr and do
// not produce an error, so the process exits cleanly.
func (c *FetchCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Fetching %s...\n", c.URL)

	progress := func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressRawSaved:
			fmt.Fprintf(deps.Stdout, "Saved raw content to %s\n", e.Artifact.Path)
		case scrape.ProgressExtracted:
			if e.Strategy != "" {
				fmt.Fprintf(deps.Stdout, "Parsed jobs using %s strategy\n", e.Strategy)
			}
		}
	}

	res, err := deps.Runner.Run(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return nil
	}

	if len(res.Jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "Successfully scraped 0 jobs.")
		fmt.Fprintln(deps.Stderr, "Hint: The page structure may have changed, or listings are rendered client-side")
		if !c.Render {
			fmt.Fprintln(deps.Stderr, "Hint: Retry with --render to run the page's scripts in headless Chrome")
		}
		fmt.Fprintln(deps.Stderr, "Hint: jobmcp scrapes through a remote browser and is recommended for this site")
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
