// Package nextjs extracts job listings from the hydration data Next.js
// embeds in server-rendered pages. It decodes __NEXT_DATA__ documents and
// App Router flight chunks structurally, and falls back to scanning the raw
// page for escaped job objects when structural decoding finds nothing.
package nextjs

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobkorea"
)

// Ensure Extractor implements jobkorea.Extractor at compile time.
var _ jobkorea.Extractor = (*Extractor)(nil)

// Mode selects which decoding strategies the Extractor uses.
type Mode int

const (
	// ModeAuto decodes structurally and scans for patterns only if that
	// finds nothing.
	ModeAuto Mode = iota
	// ModeStructural only decodes embedded JSON payloads.
	ModeStructural
	// ModePattern only scans the raw page text.
	ModePattern
)

// postingPattern matches a job object as it appears inside a JSON string
// that is itself embedded in a script, so every quote is escaped.
// The keys must appear in this order.
var postingPattern = regexp.MustCompile(`\\"id\\":\\"(\d+)\\",\\"title\\":\\"(.*?)\\",\\"postingCompanyName\\":\\"(.*?)\\"`)

// Extractor extracts jobs from Next.js hydration data.
type Extractor struct {
	mode Mode
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMode sets the decoding mode. Defaults to ModeAuto.
func WithMode(m Mode) Option {
	return func(e *Extractor) {
		e.mode = m
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{mode: ModeAuto}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the jobs embedded in html in order of appearance.
// Location and date are not part of the hydration objects and are set to
// jobkorea.SeeLink.
func (e *Extractor) Extract(html string) ([]*jobkorea.Job, error) {
	var postings []posting

	if e.mode != ModePattern {
		postings = decodeStructural(html)
	}
	if len(postings) == 0 && e.mode != ModeStructural {
		postings = scanPattern(html)
	}

	jobs := make([]*jobkorea.Job, 0, len(postings))
	for _, p := range postings {
		job := p.job()
		if err := job.Validate(); err != nil {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// posting holds the fields of one embedded job object.
type posting struct {
	id      string
	title   string
	company string
}

func (p posting) job() *jobkorea.Job {
	return &jobkorea.Job{
		Title:    jobkorea.CleanText(p.title),
		Company:  jobkorea.CleanText(p.company),
		Location: jobkorea.OptionalString(jobkorea.SeeLink),
		Date:     jobkorea.OptionalString(jobkorea.SeeLink),
		Link:     jobkorea.DetailURL(p.id),
	}
}

// scanPattern finds escaped job objects anywhere in the raw text.
func scanPattern(raw string) []posting {
	var postings []posting
	for _, m := range postingPattern.FindAllStringSubmatch(raw, -1) {
		postings = append(postings, posting{
			id:      m[1],
			title:   unescape(m[2]),
			company: unescape(m[3]),
		})
	}
	return postings
}

// unescape removes one level of backslash escaping from quotes and
// backslashes. Quotes are handled first.
func unescape(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	return strings.ReplaceAll(s, `\\`, `\`)
}

// decodeStructural decodes every hydration payload found in the page's
// scripts and collects job objects from them in document order.
func decodeStructural(html string) []posting {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var postings []posting
	collect := func(p posting) { postings = append(postings, p) }

	var flight strings.Builder
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if id, _ := s.Attr("id"); id == "__NEXT_DATA__" {
			_ = walkJSON(text, collect)
			return
		}
		for _, chunk := range flightChunks(text) {
			flight.WriteString(chunk)
		}
	})

	for _, row := range flightRows(flight.String()) {
		_ = walkJSON(row, collect)
	}
	return postings
}
