package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/jobkorea"
	main "github.com/fwojciec/jobkorea/cmd/jobfetch"
	"github.com/fwojciec/jobkorea/mock"
	"github.com/fwojciec/jobkorea/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(fetcher jobkorea.Fetcher, jobs []*jobkorea.Job) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Runner: &scrape.Runner{
			Fetcher: fetcher,
			Extractor: &mock.Extractor{
				ExtractFn: func(string) ([]*jobkorea.Job, error) { return jobs, nil },
			},
			Artifacts: &mock.ArtifactStore{
				SaveRawFn: func(_ context.Context, name, _ string) (*jobkorea.Artifact, error) {
					return &jobkorea.Artifact{Path: "out/" + name}, nil
				},
				SaveJobsFn: func(_ context.Context, name string, _ []*jobkorea.Job) (*jobkorea.Artifact, error) {
					return &jobkorea.Artifact{Path: "out/" + name}, nil
				},
			},
			RawName:    main.RawName,
			OutputName: main.OutputName,
		},
	}
	return deps, stdout, stderr
}

func TestFetchCmd_Run(t *testing.T) {
	t.Parallel()

	okFetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil },
	}

	t.Run("prints progress and summary", func(t *testing.T) {
		t.Parallel()

		jobs := []*jobkorea.Job{{Title: "T", Company: "C", Link: "https://www.jobkorea.co.kr/Recruit/GI_Read/1"}}
		deps, stdout, _ := newDeps(okFetcher, jobs)

		err := (&main.FetchCmd{URL: "https://www.jobkorea.co.kr/Search/?stext=go"}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Fetching https://www.jobkorea.co.kr/Search/?stext=go...")
		assert.Contains(t, out, "Saved raw content to out/debug.html")
		assert.Contains(t, out, "Successfully scraped 1 jobs. Saved to out/jobs.json")
	})

	t.Run("omits render hint when already rendering", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(okFetcher, nil)

		err := (&main.FetchCmd{URL: "https://example.com", Render: true}).Run(deps)

		require.NoError(t, err)
		assert.NotContains(t, stderr.String(), "--render")
		assert.Contains(t, stderr.String(), "jobmcp")
	})

	t.Run("prints application error message", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", jobkorea.Errorf(jobkorea.EINTERNAL, "HTTP 503 for %s", "https://example.com")
			},
		}
		deps, stdout, stderr := newDeps(fetcher, nil)

		err := (&main.FetchCmd{URL: "https://example.com"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "error: HTTP 503 for https://example.com\n", stderr.String())
		assert.NotContains(t, stdout.String(), "Successfully")
	})
}
