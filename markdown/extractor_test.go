package markdown_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/fwojciec/jobkorea"
	"github.com/fwojciec/jobkorea/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title company location and date", func(t *testing.T) {
		t.Parallel()

		md := lines(
			"[Backend Engineer](/Recruit/GI_Read/999)",
			"",
			"[Acme Corp](/Company/1)",
			"Seoul",
			"등록일 2024-01-01",
		)

		e := markdown.NewExtractor(markdown.DefaultConfig())
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Backend Engineer", jobs[0].Title)
		assert.Equal(t, "https://www.jobkorea.co.kr/Recruit/GI_Read/999", jobs[0].Link)
		assert.Equal(t, "Acme Corp", jobs[0].Company)
		require.NotNil(t, jobs[0].Location)
		require.NotNil(t, jobs[0].Date)
		assert.Equal(t, "Seoul", *jobs[0].Location)
		assert.Equal(t, "등록일 2024-01-01", *jobs[0].Date)
	})

	t.Run("extracts consecutive listings", func(t *testing.T) {
		t.Parallel()

		md := lines(
			"# 검색 결과",
			"[Backend Engineer](https://www.jobkorea.co.kr/Recruit/GI_Read/1)",
			"[Acme](/Company/1)",
			"서울 강남구",
			"[정규직](/tag)",
			"~02/01(목) 마감",
			"",
			"[Frontend Engineer](/Recruit/GI_Read/2 \"detail\")",
			"",
			"[Beta](/Company/2)",
			"부산",
			"오늘 등록",
		)

		e := markdown.NewExtractor(markdown.DefaultConfig())
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, "Backend Engineer", jobs[0].Title)
		assert.Equal(t, "서울 강남구", *jobs[0].Location)
		assert.Equal(t, "~02/01(목) 마감", *jobs[0].Date)
		assert.Equal(t, "Frontend Engineer", jobs[1].Title)
		assert.Equal(t, "https://www.jobkorea.co.kr/Recruit/GI_Read/2", jobs[1].Link)
		assert.Equal(t, "Beta", jobs[1].Company)
		assert.Equal(t, "부산", *jobs[1].Location)
		assert.Equal(t, "오늘 등록", *jobs[1].Date)
	})

	t.Run("ignores links that are not detail links", func(t *testing.T) {
		t.Parallel()

		md := lines(
			"[Home](/)",
			"[Login](https://www.jobkorea.co.kr/Login)",
			"text mentioning [a link](/Recruit/GI_Read/5) inline",
		)

		e := markdown.NewExtractor(markdown.DefaultConfig())
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		assert.Empty(t, jobs)
		assert.NotNil(t, jobs)
	})

	t.Run("defaults fields to Unknown when company is outside window", func(t *testing.T) {
		t.Parallel()

		md := lines(
			"[Title](/Recruit/GI_Read/1)",
			"", "", "", "", "",
			"[Too Far](/Company/1)",
		)

		e := markdown.NewExtractor(markdown.DefaultConfig())
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, jobkorea.Unknown, jobs[0].Company)
		assert.Equal(t, jobkorea.Unknown, *jobs[0].Location)
		assert.Equal(t, jobkorea.Unknown, *jobs[0].Date)
	})

	t.Run("finds company on last line of window", func(t *testing.T) {
		t.Parallel()

		md := lines(
			"[Title](/Recruit/GI_Read/1)",
			"", "", "", "",
			"[Edge](/Company/1)",
		)

		e := markdown.NewExtractor(markdown.DefaultConfig())
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Edge", jobs[0].Company)
	})

	t.Run("bounds location search", func(t *testing.T) {
		t.Parallel()

		md := lines(
			"[Title](/Recruit/GI_Read/1)",
			"[Company](/Company/1)",
			"", "", "", "",
			"Too Far",
		)

		e := markdown.NewExtractor(markdown.DefaultConfig())
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, jobkorea.Unknown, *jobs[0].Location)
	})

	t.Run("bounds date search", func(t *testing.T) {
		t.Parallel()

		md := lines(
			"[Title](/Recruit/GI_Read/1)",
			"[Company](/Company/1)",
			"Seoul",
			"a", "b", "c", "d", "e", "f", "g", "h",
			"등록 too late",
		)

		e := markdown.NewExtractor(markdown.DefaultConfig())
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Seoul", *jobs[0].Location)
		assert.Equal(t, jobkorea.Unknown, *jobs[0].Date)
	})

	t.Run("honours custom windows", func(t *testing.T) {
		t.Parallel()

		cfg := markdown.DefaultConfig()
		cfg.CompanyWindow = 1

		md := lines(
			"[Title](/Recruit/GI_Read/1)",
			"",
			"[Company](/Company/1)",
		)

		e := markdown.NewExtractor(cfg)
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, jobkorea.Unknown, jobs[0].Company)
	})

	t.Run("resolves against custom base URL", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://m.jobkorea.co.kr")
		require.NoError(t, err)
		cfg := markdown.DefaultConfig()
		cfg.BaseURL = base

		e := markdown.NewExtractor(cfg)
		jobs, err := e.Extract("[T](/Recruit/GI_Read/3)")

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "https://m.jobkorea.co.kr/Recruit/GI_Read/3", jobs[0].Link)
	})

	t.Run("fills zero config fields with defaults", func(t *testing.T) {
		t.Parallel()

		md := lines(
			"[Backend Engineer](/Recruit/GI_Read/999)",
			"[Acme Corp](/Company/1)",
			"Seoul",
			"마감 D-3",
		)

		e := markdown.NewExtractor(markdown.Config{})
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "마감 D-3", *jobs[0].Date)
	})

	t.Run("removes backslash escapes from fields", func(t *testing.T) {
		t.Parallel()

		md := lines(
			`[\[경력\] Go\_dev \*급구\*](/Recruit/GI_Read/5)`,
			`[\(주\)Acme\_Co](/Company/1)`,
			`서울 \- 강남 a\b`,
			`\~02/01 마감`,
		)

		e := markdown.NewExtractor(markdown.DefaultConfig())
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "[경력] Go_dev *급구*", jobs[0].Title)
		assert.Equal(t, "https://www.jobkorea.co.kr/Recruit/GI_Read/5", jobs[0].Link)
		assert.Equal(t, "(주)Acme_Co", jobs[0].Company)
		assert.Equal(t, `서울 - 강남 a\b`, *jobs[0].Location)
		assert.Equal(t, "~02/01 마감", *jobs[0].Date)
	})

	t.Run("is deterministic across runs", func(t *testing.T) {
		t.Parallel()

		md := lines(
			"[A](/Recruit/GI_Read/1)",
			"[Acme](/Company/1)",
			"Seoul",
			"등록",
			"[B](/Recruit/GI_Read/2)",
		)

		e := markdown.NewExtractor(markdown.DefaultConfig())
		first, err := e.Extract(md)
		require.NoError(t, err)
		second, err := e.Extract(md)
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestExtractor_NestedTitle(t *testing.T) {
	t.Parallel()

	md := lines(
		"[Orphan](/Recruit/GI_Read/1)",
		"",
		"[Next Job](/Recruit/GI_Read/2)",
		"[Acme](/Company/1)",
		"Seoul",
		"등록일 2024-01-01",
	)

	t.Run("emits orphan with unknown company by default", func(t *testing.T) {
		t.Parallel()

		e := markdown.NewExtractor(markdown.DefaultConfig())
		jobs, err := e.Extract(md)

		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, "Orphan", jobs[0].Title)
		assert.Equal(t, jobkorea.Unknown, jobs[0].Company)
		assert.Equal(t, "Next Job", jobs[1].Title)
		assert.Equal(t, "Acme", jobs[1].Company)
		assert.Equal(t, "Seoul", *jobs[1].Location)
	})

	t.Run("skips orphan when configured", func(t *testing.T) {
		t.Parallel()

		cfg := markdown.DefaultConfig()
		cfg.OnNestedTitle = markdown.NestedTitleSkip

		e := markdown.NewExtractor(cfg)
		results, err := e.ExtractItems(md)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 0, results[0].Position)
		assert.Equal(t, jobkorea.SkipNestedTitle, results[0].Skip)
		assert.Equal(t, 2, results[1].Position)
		assert.False(t, results[1].Skipped())
		assert.Equal(t, "Next Job", results[1].Job.Title)
	})
}

func TestExtractor_ExtractItems(t *testing.T) {
	t.Parallel()

	md := lines(
		"[](/Recruit/GI_Read/1)",
		"[Bad](javascript:alert(1)/Recruit/GI_Read/2)",
		"[Good](/Recruit/GI_Read/3)",
	)

	e := markdown.NewExtractor(markdown.DefaultConfig())
	results, err := e.ExtractItems(md)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, jobkorea.SkipEmptyTitle, results[0].Skip)
	assert.Equal(t, 0, results[0].Position)
	assert.False(t, results[1].Skipped())
	assert.Equal(t, 2, results[1].Position)
}
