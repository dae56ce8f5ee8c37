// Package fs provides file-based storage for run artifacts.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/jobkorea"
)

// Ensure Store implements jobkorea.ArtifactStore at compile time.
var _ jobkorea.ArtifactStore = (*Store)(nil)

// Store writes artifacts as files in a single directory. Files are written
// to a temporary file and renamed into place, so readers never observe a
// partially written artifact.
type Store struct {
	dir string
}

// NewStore creates a new Store that writes to dir. The directory is created
// on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// SaveRaw writes content verbatim to name.
func (s *Store) SaveRaw(ctx context.Context, name, content string) (*jobkorea.Artifact, error) {
	return s.write(ctx, name, []byte(content))
}

// SaveJobs writes jobs to name as an indented JSON array. Non-ASCII text is
// written as UTF-8 and a nil slice is written as an empty array.
func (s *Store) SaveJobs(ctx context.Context, name string, jobs []*jobkorea.Job) (*jobkorea.Artifact, error) {
	data, err := EncodeJobs(jobs)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, name, data)
}

// EncodeJobs returns the JSON encoding SaveJobs writes.
func EncodeJobs(jobs []*jobkorea.Job) ([]byte, error) {
	if jobs == nil {
		jobs = []*jobkorea.Job{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jobs); err != nil {
		return nil, fmt.Errorf("encoding jobs: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Store) write(ctx context.Context, name string, data []byte) (*jobkorea.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return nil, jobkorea.Errorf(jobkorea.EINVALID, "invalid artifact name: %q", name)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return nil, err
	}
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, err
	}

	return &jobkorea.Artifact{
		Path:     path,
		Bytes:    len(data),
		Checksum: computeHash(data),
	}, nil
}

// computeHash computes a hash of the content using xxhash.
func computeHash(data []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}
