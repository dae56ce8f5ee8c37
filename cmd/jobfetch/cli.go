package main

import (
	"context"
	"io"

	"github.com/fwojciec/jobkorea/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Runner *scrape.Runner
}

// FetchCmd handles the fetch operation.
type FetchCmd struct {
	URL    string
	Render bool
}
