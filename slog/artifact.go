package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jobkorea"
)

// Ensure LoggingArtifactStore implements jobkorea.ArtifactStore.
var _ jobkorea.ArtifactStore = (*LoggingArtifactStore)(nil)

// LoggingArtifactStore wraps an ArtifactStore with logging.
type LoggingArtifactStore struct {
	next   jobkorea.ArtifactStore
	logger *slog.Logger
}

// NewLoggingArtifactStore creates a new LoggingArtifactStore.
func NewLoggingArtifactStore(next jobkorea.ArtifactStore, logger *slog.Logger) *LoggingArtifactStore {
	return &LoggingArtifactStore{next: next, logger: logger}
}

// SaveRaw delegates to the wrapped store and logs the written artifact.
func (s *LoggingArtifactStore) SaveRaw(ctx context.Context, name, content string) (a *jobkorea.Artifact, err error) {
	defer func(begin time.Time) {
		s.log("save raw", name, a, begin, err)
	}(time.Now())
	return s.next.SaveRaw(ctx, name, content)
}

// SaveJobs delegates to the wrapped store and logs the written artifact.
func (s *LoggingArtifactStore) SaveJobs(ctx context.Context, name string, jobs []*jobkorea.Job) (a *jobkorea.Artifact, err error) {
	defer func(begin time.Time) {
		s.log("save jobs", name, a, begin, err, "count", len(jobs))
	}(time.Now())
	return s.next.SaveJobs(ctx, name, jobs)
}

func (s *LoggingArtifactStore) log(msg, name string, a *jobkorea.Artifact, begin time.Time, err error, extra ...any) {
	args := []any{"name", name}
	if a != nil {
		args = append(args, "path", a.Path, "bytes", a.Bytes, "checksum", a.Checksum)
	}
	args = append(args, extra...)
	args = append(args, "duration", time.Since(begin), "err", err)
	s.logger.Info(msg, args...)
}
