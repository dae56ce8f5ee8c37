// Package goquery implements extraction of server-rendered JobKorea listing
// markup using CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobkorea"
)

// Ensure ListingExtractor implements jobkorea.ItemExtractor at compile time.
var _ jobkorea.ItemExtractor = (*ListingExtractor)(nil)

// ListingSelectors holds the CSS selectors used to locate listing parts.
// Each field lists candidates in priority order; the first one that
// matches wins.
type ListingSelectors struct {
	Containers []string
	Items      string
	TitleLinks []string
	Companies  []string
	Info       string
	InfoLabels string
	Date       string
}

// DefaultListingSelectors returns the selectors matching JobKorea's search
// result markup.
func DefaultListingSelectors() ListingSelectors {
	return ListingSelectors{
		Containers: []string{"div.list-default", "ul.clear"},
		Items:      "li",
		TitleLinks: []string{"a.title", "a[title]"},
		Companies:  []string{"div.post-list-corp", "a.name"},
		Info:       "div.post-list-info",
		InfoLabels: "span",
		Date:       "span.date",
	}
}

// ListingExtractor extracts jobs from static listing HTML.
type ListingExtractor struct {
	base      *url.URL
	selectors ListingSelectors
}

// Option configures a ListingExtractor.
type Option func(*ListingExtractor)

// WithBaseURL sets the URL relative links are resolved against.
// Defaults to jobkorea.DefaultBaseURL.
func WithBaseURL(u *url.URL) Option {
	return func(e *ListingExtractor) {
		e.base = u
	}
}

// WithSelectors replaces the default selectors.
func WithSelectors(s ListingSelectors) Option {
	return func(e *ListingExtractor) {
		e.selectors = s
	}
}

// NewListingExtractor creates a new ListingExtractor.
func NewListingExtractor(opts ...Option) *ListingExtractor {
	e := &ListingExtractor{
		base:      jobkorea.MustParseBaseURL(""),
		selectors: DefaultListingSelectors(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the jobs found in html in document order.
// Returns an empty slice if no listing container is present.
func (e *ListingExtractor) Extract(html string) ([]*jobkorea.Job, error) {
	results, err := e.ExtractItems(html)
	if err != nil {
		return nil, err
	}
	return jobkorea.Jobs(results), nil
}

// ExtractItems returns one result per listing item, including skipped ones.
func (e *ListingExtractor) ExtractItems(html string) ([]jobkorea.ItemResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, jobkorea.Errorf(jobkorea.EINVALID, "failed to parse HTML: %v", err)
	}

	containers := firstMatch(doc.Selection, e.selectors.Containers)
	if containers == nil {
		return nil, nil
	}

	var results []jobkorea.ItemResult
	containers.Each(func(_ int, container *goquery.Selection) {
		container.Find(e.selectors.Items).Each(func(_ int, item *goquery.Selection) {
			res := e.extractItem(item)
			res.Position = len(results)
			results = append(results, res)
		})
	})
	return results, nil
}

// extractItem builds a job from a single listing item. Missing optional
// parts degrade to defaults; missing required parts produce a skip.
func (e *ListingExtractor) extractItem(item *goquery.Selection) jobkorea.ItemResult {
	titleLink := firstMatch(item, e.selectors.TitleLinks)
	if titleLink == nil {
		return jobkorea.ItemResult{Skip: jobkorea.SkipMissingTitleLink}
	}
	titleLink = titleLink.First()

	title := jobkorea.CleanText(titleLink.Text())
	if title == "" {
		return jobkorea.ItemResult{Skip: jobkorea.SkipEmptyTitle}
	}

	href, ok := titleLink.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return jobkorea.ItemResult{Skip: jobkorea.SkipMissingLink}
	}
	link, err := jobkorea.ResolveLink(e.base, href)
	if err != nil {
		return jobkorea.ItemResult{Skip: jobkorea.SkipInvalidLink}
	}

	company := jobkorea.Unknown
	if sel := firstMatch(item, e.selectors.Companies); sel != nil {
		if text := jobkorea.CleanText(sel.First().Text()); text != "" {
			company = text
		}
	}

	location, date := e.extractInfo(item)

	job := &jobkorea.Job{
		Title:    title,
		Company:  company,
		Location: location,
		Date:     date,
		Link:     link,
	}
	if err := job.Validate(); err != nil {
		return jobkorea.ItemResult{Skip: jobkorea.SkipInvalidLink}
	}
	return jobkorea.ItemResult{Job: job}
}

// extractInfo reads location and date from the item's info block.
// The first label is the location. A dedicated date label wins over the
// last label, which is only used when there is more than one.
func (e *ListingExtractor) extractInfo(item *goquery.Selection) (location, date *string) {
	info := item.Find(e.selectors.Info).First()
	if info.Length() == 0 {
		return nil, nil
	}

	var labels []string
	info.Find(e.selectors.InfoLabels).Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, strings.TrimSpace(s.Text()))
	})
	if len(labels) > 0 {
		location = jobkorea.OptionalString(jobkorea.CleanText(labels[0]))
	}

	if d := info.Find(e.selectors.Date).First(); d.Length() > 0 {
		date = jobkorea.OptionalString(strings.TrimSpace(d.Text()))
	} else if len(labels) > 1 {
		date = jobkorea.OptionalString(labels[len(labels)-1])
	}
	return location, date
}

// firstMatch returns the matches of the first selector that matches
// anything within sel, or nil if none does.
func firstMatch(sel *goquery.Selection, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		if found := sel.Find(s); found.Length() > 0 {
			return found
		}
	}
	return nil
}
