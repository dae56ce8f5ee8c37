package mock

import (
	"context"

	"github.com/fwojciec/jobkorea"
)

var _ jobkorea.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of jobkorea.ArtifactStore.
type ArtifactStore struct {
	SaveRawFn  func(ctx context.Context, name, content string) (*jobkorea.Artifact, error)
	SaveJobsFn func(ctx context.Context, name string, jobs []*jobkorea.Job) (*jobkorea.Artifact, error)
}

func (s *ArtifactStore) SaveRaw(ctx context.Context, name, content string) (*jobkorea.Artifact, error) {
	return s.SaveRawFn(ctx, name, content)
}

func (s *ArtifactStore) SaveJobs(ctx context.Context, name string, jobs []*jobkorea.Job) (*jobkorea.Artifact, error) {
	return s.SaveJobsFn(ctx, name, jobs)
}
