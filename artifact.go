package jobkorea

import "context"

// Artifact describes a file written by an ArtifactStore.
type Artifact struct {
	Path     string
	Bytes    int
	Checksum string // xxhash64, hex encoded
}

// ArtifactStore persists the raw content and the extracted records of a run.
// Each call replaces any previous file with the same name.
type ArtifactStore interface {
	// SaveRaw writes acquired content verbatim.
	SaveRaw(ctx context.Context, name string, content string) (*Artifact, error)

	// SaveJobs writes jobs as a JSON array, preserving order.
	SaveJobs(ctx context.Context, name string, jobs []*Job) (*Artifact, error)
}
