// Package slog provides log/slog decorators for the jobkorea interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jobkorea"
)

// Ensure LoggingFetcher implements jobkorea.Fetcher.
var _ jobkorea.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   jobkorea.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next jobkorea.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the URL, content size and
// outcome. Failures are logged at warn level with their error code.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (content string, err error) {
	defer func(begin time.Time) {
		args := []any{
			"url", url,
			"bytes", len(content),
			"duration", time.Since(begin),
		}
		if err != nil {
			args = append(args, "code", jobkorea.ErrorCode(err), "err", err)
			f.logger.Warn("fetch", args...)
			return
		}
		f.logger.Info("fetch", args...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher and logs how long shutdown took,
// which for browser-backed fetchers includes stopping the browser.
func (f *LoggingFetcher) Close() (err error) {
	defer func(begin time.Time) {
		f.logger.Debug("close fetcher",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Close()
}
