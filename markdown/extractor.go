// Package markdown reconstructs job listings from a markdown rendering of a
// JobKorea listing page, as produced by remote browser scraping services or
// by converting fetched HTML.
//
// No structural markers survive markdown flattening, so the extractor scans
// lines with a small state machine and bounded lookahead windows relative
// to each job title link.
package markdown

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/jobkorea"
)

// Ensure Extractor implements jobkorea.ItemExtractor at compile time.
var _ jobkorea.ItemExtractor = (*Extractor)(nil)

// Default window sizes, in lines.
const (
	DefaultCompanyWindow  = 5
	DefaultLocationWindow = 5
	DefaultDateWindow     = 10
)

// DefaultDateMarkers are the substrings identifying a registration or
// deadline line ("registered", "closes").
var DefaultDateMarkers = []string{"등록", "마감"}

// NestedTitlePolicy decides what happens to a title whose company lookahead
// runs into another detail link.
type NestedTitlePolicy int

const (
	// NestedTitleEmit emits the record with an unknown company.
	NestedTitleEmit NestedTitlePolicy = iota
	// NestedTitleSkip drops the record with jobkorea.SkipNestedTitle.
	NestedTitleSkip
)

// Config holds the scanning parameters. Zero fields take their defaults.
type Config struct {
	// CompanyWindow is how many lines after the title are searched for
	// the company link.
	CompanyWindow int
	// LocationWindow bounds the location search to lines strictly between
	// the company line and company+LocationWindow.
	LocationWindow int
	// DateWindow bounds the date search to lines strictly before
	// company+DateWindow.
	DateWindow int
	// DateMarkers are substrings that identify the date line.
	DateMarkers []string
	// DetailPathMarker identifies job detail links.
	DetailPathMarker string
	// BaseURL resolves relative links. Defaults to jobkorea.DefaultBaseURL.
	BaseURL *url.URL
	// OnNestedTitle selects the nested title policy.
	OnNestedTitle NestedTitlePolicy
}

// DefaultConfig returns the configuration matching JobKorea's markdown
// renderings.
func DefaultConfig() Config {
	return Config{
		CompanyWindow:    DefaultCompanyWindow,
		LocationWindow:   DefaultLocationWindow,
		DateWindow:       DefaultDateWindow,
		DateMarkers:      DefaultDateMarkers,
		DetailPathMarker: jobkorea.DetailPathMarker,
		BaseURL:          jobkorea.MustParseBaseURL(""),
		OnNestedTitle:    NestedTitleEmit,
	}
}

// Extractor extracts jobs from markdown.
type Extractor struct {
	cfg Config
}

// NewExtractor creates a new Extractor.
func NewExtractor(cfg Config) *Extractor {
	def := DefaultConfig()
	if cfg.CompanyWindow <= 0 {
		cfg.CompanyWindow = def.CompanyWindow
	}
	if cfg.LocationWindow <= 0 {
		cfg.LocationWindow = def.LocationWindow
	}
	if cfg.DateWindow <= 0 {
		cfg.DateWindow = def.DateWindow
	}
	if len(cfg.DateMarkers) == 0 {
		cfg.DateMarkers = def.DateMarkers
	}
	if cfg.DetailPathMarker == "" {
		cfg.DetailPathMarker = def.DetailPathMarker
	}
	if cfg.BaseURL == nil {
		cfg.BaseURL = def.BaseURL
	}
	return &Extractor{cfg: cfg}
}

// Extract returns the jobs found in md in order of their title lines.
func (e *Extractor) Extract(md string) ([]*jobkorea.Job, error) {
	results, err := e.ExtractItems(md)
	if err != nil {
		return nil, err
	}
	return jobkorea.Jobs(results), nil
}

// ExtractItems returns one result per detail link that was considered a
// job title. Positions are zero-based line numbers.
func (e *Extractor) ExtractItems(md string) ([]jobkorea.ItemResult, error) {
	s := &scanner{
		cfg:   e.cfg,
		lines: strings.Split(md, "\n"),
	}
	return s.run(), nil
}

// linkPattern matches a markdown link at the start of a line, with an
// optional title attribute.
var linkPattern = regexp.MustCompile(`^\[(.*?)\]\(([^\s)]*)(?:\s+"[^"]*")?\)`)

// leadingLink returns the text and target of the link starting line.
func leadingLink(line string) (text, target string, ok bool) {
	m := linkPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// wholeLink is like leadingLink but requires the link to span the line.
func wholeLink(line string) (text, target string, ok bool) {
	m := linkPattern.FindStringSubmatchIndex(line)
	if m == nil || m[1] != len(line) {
		return "", "", false
	}
	return line[m[2]:m[3]], line[m[4]:m[5]], true
}

// punctuation lists the characters markdown allows to be backslash
// escaped.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// unescape removes backslash escapes in front of ASCII punctuation, as
// emitted by HTML to markdown converters for brackets, underscores and
// asterisks in plain text.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && strings.IndexByte(punctuation, s[i+1]) >= 0 {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

type state int

const (
	seekTitle state = iota
	seekCompany
	seekLocation
	seekDate
	emit
)

// scanner walks lines once. Each title starts a candidate whose company,
// location and date are looked up in windows anchored at the title and
// company lines.
type scanner struct {
	cfg     Config
	lines   []string
	results []jobkorea.ItemResult

	state state
	pos   int

	// Current candidate.
	titleAt   int
	companyAt int // -1 when no company line was found
	locAt     int
	title     string
	link      string
	company   string
	location  string
	date      string
}

func (s *scanner) run() []jobkorea.ItemResult {
	for {
		switch s.state {
		case seekTitle:
			if s.pos >= len(s.lines) {
				return s.results
			}
			s.seekTitle()
		case seekCompany:
			s.seekCompany()
		case seekLocation:
			s.seekLocation()
		case seekDate:
			s.seekDate()
		case emit:
			s.emit()
		}
	}
}

func (s *scanner) line(i int) string {
	return strings.TrimSpace(s.lines[i])
}

func (s *scanner) skip(reason jobkorea.SkipReason) {
	s.results = append(s.results, jobkorea.ItemResult{Position: s.titleAt, Skip: reason})
}

func (s *scanner) seekTitle() {
	at := s.pos
	s.pos++

	text, target, ok := wholeLink(s.line(at))
	if !ok || !strings.Contains(target, s.cfg.DetailPathMarker) {
		return
	}

	s.titleAt = at
	s.companyAt = -1
	s.company = jobkorea.Unknown
	s.location = jobkorea.Unknown
	s.date = jobkorea.Unknown

	s.title = jobkorea.CleanText(unescape(text))
	if s.title == "" {
		s.skip(jobkorea.SkipEmptyTitle)
		return
	}
	link, err := jobkorea.ResolveLink(s.cfg.BaseURL, target)
	if err != nil {
		s.skip(jobkorea.SkipInvalidLink)
		return
	}
	s.link = link
	s.state = seekCompany
}

func (s *scanner) seekCompany() {
	for off := 1; off <= s.cfg.CompanyWindow && s.titleAt+off < len(s.lines); off++ {
		line := s.line(s.titleAt + off)
		if line == "" {
			continue
		}
		if strings.Contains(line, s.cfg.DetailPathMarker) {
			if s.cfg.OnNestedTitle == NestedTitleSkip {
				s.skip(jobkorea.SkipNestedTitle)
				s.state = seekTitle
				return
			}
			break
		}
		if text, _, ok := leadingLink(line); ok {
			if company := jobkorea.CleanText(unescape(text)); company != "" {
				s.company = company
			}
			s.companyAt = s.titleAt + off
			s.state = seekLocation
			return
		}
	}
	s.state = emit
}

func (s *scanner) seekLocation() {
	s.locAt = s.companyAt + s.cfg.LocationWindow
	for off := 1; off < s.cfg.LocationWindow && s.companyAt+off < len(s.lines); off++ {
		line := s.line(s.companyAt + off)
		if line != "" && !strings.HasPrefix(line, "[") {
			s.location = jobkorea.CleanText(unescape(line))
			s.locAt = s.companyAt + off
			break
		}
	}
	s.state = seekDate
}

func (s *scanner) seekDate() {
	end := s.companyAt + s.cfg.DateWindow
	for at := s.locAt + 1; at < end && at < len(s.lines); at++ {
		line := s.line(at)
		if containsAny(line, s.cfg.DateMarkers) {
			s.date = unescape(line)
			break
		}
	}
	s.state = emit
}

func (s *scanner) emit() {
	job := &jobkorea.Job{
		Title:    s.title,
		Company:  s.company,
		Location: jobkorea.OptionalString(s.location),
		Date:     jobkorea.OptionalString(s.date),
		Link:     s.link,
	}
	if err := job.Validate(); err != nil {
		s.skip(jobkorea.SkipInvalidLink)
	} else {
		s.results = append(s.results, jobkorea.ItemResult{Position: s.titleAt, Job: job})
	}

	// Resume after the company line, or after the title if none was found.
	if s.companyAt >= 0 {
		s.pos = s.companyAt + 1
	} else {
		s.pos = s.titleAt + 1
	}
	s.state = seekTitle
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
