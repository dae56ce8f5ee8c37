package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/jobkorea"
	"github.com/fwojciec/jobkorea/htmltomarkdown"
	"github.com/fwojciec/jobkorea/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements jobkorea.Converter at compile time.
var _ jobkorea.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p><a href="/Recruit/GI_Read/1">Backend Engineer</a></p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Backend Engineer](/Recruit/GI_Read/1)")
	})

	t.Run("keeps korean text", func(t *testing.T) {
		t.Parallel()

		html := `<p>서울 강남구</p><p>등록일 01/01</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "서울 강남구")
		assert.Contains(t, md, "등록일 01/01")
	})

	t.Run("drops scripts", func(t *testing.T) {
		t.Parallel()

		html := `<p>Visible</p><script>self.__next_f.push([1,"hidden"])</script>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Visible")
		assert.NotContains(t, md, "__next_f")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Title</th><th>Company</th></tr></thead>
<tbody><tr><td>Engineer</td><td>Acme</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Engineer")
		assert.Contains(t, md, "Acme")
		assert.Contains(t, md, "|")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, jobkorea.EINVALID, jobkorea.ErrorCode(err))
	})

	t.Run("produces markdown the markdown extractor understands", func(t *testing.T) {
		t.Parallel()

		html := `<section>
<div><a href="/Recruit/GI_Read/42">Backend Engineer</a></div>
<div><a href="/Company/7">Acme</a></div>
<div>서울 강남구</div>
<div>등록일 01/01</div>
</section>`

		e := &jobkorea.ConvertedExtractor{
			Converter: htmltomarkdown.NewConverter(),
			Extractor: markdown.NewExtractor(markdown.DefaultConfig()),
		}
		jobs, err := e.Extract(html)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Backend Engineer", jobs[0].Title)
		assert.Equal(t, "https://www.jobkorea.co.kr/Recruit/GI_Read/42", jobs[0].Link)
		assert.Equal(t, "Acme", jobs[0].Company)
		assert.Equal(t, "서울 강남구", *jobs[0].Location)
		assert.Equal(t, "등록일 01/01", *jobs[0].Date)
	})

	t.Run("puts list item links on lines of their own", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(listHTML)

		require.NoError(t, err)
		lines := strings.Split(md, "\n")
		assert.Contains(t, lines, "[Backend Engineer](/Recruit/GI_Read/1)")
		assert.Contains(t, lines, "[Acme](/Company/1)")
	})
}

// listHTML puts a title and company link side by side in each list item.
const listHTML = `<ul>
<li>
	<a href="/Recruit/GI_Read/1">Backend Engineer</a> <a href="/Company/1">Acme</a>
	<div>서울 강남구</div>
	<div>~02/01(토) 마감</div>
</li>
<li>
	<a href="/Recruit/GI_Read/2">Data Engineer</a> <a href="/Company/2">Beta</a>
	<div>부산</div>
	<div>오늘 등록</div>
</li>
</ul>`

func TestConverter_ListLayout(t *testing.T) {
	t.Parallel()

	t.Run("flattened lists feed the markdown extractor", func(t *testing.T) {
		t.Parallel()

		e := &jobkorea.ConvertedExtractor{
			Converter: htmltomarkdown.NewConverter(),
			Extractor: markdown.NewExtractor(markdown.DefaultConfig()),
		}
		jobs, err := e.Extract(listHTML)

		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, "Backend Engineer", jobs[0].Title)
		assert.Equal(t, "Acme", jobs[0].Company)
		assert.Equal(t, "서울 강남구", *jobs[0].Location)
		assert.Equal(t, "Data Engineer", jobs[1].Title)
		assert.Equal(t, "Beta", jobs[1].Company)
	})

	t.Run("preserved layout keeps links inline", func(t *testing.T) {
		t.Parallel()

		e := &jobkorea.ConvertedExtractor{
			Converter: htmltomarkdown.NewConverter(htmltomarkdown.PreserveLayout()),
			Extractor: markdown.NewExtractor(markdown.DefaultConfig()),
		}
		jobs, err := e.Extract(listHTML)

		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("bracketed titles and inline labels survive conversion", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>
			<a href="/Recruit/GI_Read/1">[신입] Node_js *백엔드* 개발자</a>
			<a href="/Company/1">(주)에이_비</a>
			<div class="info"><span>서울</span><span>오늘 등록</span></div>
		</li></ul>`

		e := &jobkorea.ConvertedExtractor{
			Converter: htmltomarkdown.NewConverter(),
			Extractor: markdown.NewExtractor(markdown.DefaultConfig()),
		}
		jobs, err := e.Extract(html)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "[신입] Node_js *백엔드* 개발자", jobs[0].Title)
		assert.Equal(t, "https://www.jobkorea.co.kr/Recruit/GI_Read/1", jobs[0].Link)
		assert.Equal(t, "(주)에이_비", jobs[0].Company)
		assert.Equal(t, "서울", *jobs[0].Location)
		assert.Equal(t, "오늘 등록", *jobs[0].Date)
	})
}
