// Package scrape provides the one-shot scrape run shared by the command
// line tools. It coordinates acquisition, artifact storage and extraction
// of a single listing page.
package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/jobkorea"
)

// Runner acquires one page, saves it, extracts jobs from it and saves them.
type Runner struct {
	Fetcher    jobkorea.Fetcher
	Extractor  jobkorea.Extractor
	Artifacts  jobkorea.ArtifactStore
	RawName    string
	OutputName string
}

// Result holds the outcome of a run.
type Result struct {
	Jobs     []*jobkorea.Job
	Strategy string // empty when the extractor does not report strategies
	Raw      *jobkorea.Artifact
	Output   *jobkorea.Artifact
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type     ProgressType
	URL      string
	Bytes    int
	Count    int
	Strategy string
	Artifact *jobkorea.Artifact
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressFetched ProgressType = iota
	ProgressRawSaved
	ProgressExtracted
	ProgressJobsSaved
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run executes the four steps in order and stops at the first failure.
// Artifacts written before a failure are left in place. The progress
// callback, if provided, receives one event per completed step.
func (r *Runner) Run(ctx context.Context, url string, progress ProgressFunc) (*Result, error) {
	if strings.TrimSpace(url) == "" {
		return nil, jobkorea.Errorf(jobkorea.EINVALID, "URL required")
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	content, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	progress(ProgressEvent{Type: ProgressFetched, URL: url, Bytes: len(content)})

	raw, err := r.Artifacts.SaveRaw(ctx, r.RawName, content)
	if err != nil {
		return nil, fmt.Errorf("save raw content: %w", err)
	}
	progress(ProgressEvent{Type: ProgressRawSaved, URL: url, Artifact: raw})

	res, err := r.extract(content)
	if err != nil {
		return nil, fmt.Errorf("extract jobs: %w", err)
	}
	progress(ProgressEvent{Type: ProgressExtracted, URL: url, Count: len(res.Jobs), Strategy: res.Strategy})

	out, err := r.Artifacts.SaveJobs(ctx, r.OutputName, res.Jobs)
	if err != nil {
		return nil, fmt.Errorf("save jobs: %w", err)
	}
	progress(ProgressEvent{Type: ProgressJobsSaved, URL: url, Count: len(res.Jobs), Artifact: out})

	return &Result{
		Jobs:     res.Jobs,
		Strategy: res.Strategy,
		Raw:      raw,
		Output:   out,
	}, nil
}

func (r *Runner) extract(content string) (*jobkorea.ChainResult, error) {
	if s, ok := r.Extractor.(jobkorea.StrategyExtractor); ok {
		res, err := s.ExtractWithStrategy(content)
		if err != nil {
			return nil, err
		}
		if res.Jobs == nil {
			res.Jobs = []*jobkorea.Job{}
		}
		return res, nil
	}

	jobs, err := r.Extractor.Extract(content)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*jobkorea.Job{}
	}
	return &jobkorea.ChainResult{Jobs: jobs}, nil
}
