package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/jobkorea"
)

// Ensure LoggingExtractor implements jobkorea.StrategyExtractor.
var _ jobkorea.StrategyExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. Skipped items are
// logged at debug level when the wrapped extractor reports them.
type LoggingExtractor struct {
	next   jobkorea.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next jobkorea.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(content string) (jobs []*jobkorea.Job, err error) {
	skipped := 0
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"bytes", len(content),
			"count", len(jobs),
			"skipped", skipped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	return e.extract(content, &skipped)
}

// extract runs the wrapped extractor, logging each skipped item when the
// extractor reports them.
func (e *LoggingExtractor) extract(content string, skipped *int) ([]*jobkorea.Job, error) {
	items, ok := e.next.(jobkorea.ItemExtractor)
	if !ok {
		return e.next.Extract(content)
	}

	results, err := items.ExtractItems(content)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.Skipped() {
			*skipped++
			e.logger.Debug("skip item", "position", r.Position, "reason", string(r.Skip))
		}
	}
	return jobkorea.Jobs(results), nil
}

// ExtractWithStrategy delegates to the wrapped extractor and logs the
// winning strategy. Extractors without strategies report an empty name.
// Skipped items are counted only for extractors without strategies; a
// chain's strategies are expected to log their own.
func (e *LoggingExtractor) ExtractWithStrategy(content string) (res *jobkorea.ChainResult, err error) {
	skipped := -1
	defer func(begin time.Time) {
		var count int
		var strategy string
		if res != nil {
			count = len(res.Jobs)
			strategy = res.Strategy
		}
		args := []any{
			"bytes", len(content),
			"count", count,
		}
		if skipped >= 0 {
			args = append(args, "skipped", skipped)
		}
		args = append(args,
			"strategy", strategy,
			"duration", time.Since(begin),
			"err", err,
		)
		e.logger.Info("extract", args...)
	}(time.Now())

	if s, ok := e.next.(jobkorea.StrategyExtractor); ok {
		return s.ExtractWithStrategy(content)
	}
	skipped = 0
	jobs, err := e.extract(content, &skipped)
	if err != nil {
		return nil, err
	}
	return &jobkorea.ChainResult{Jobs: jobs}, nil
}
