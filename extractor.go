package jobkorea

// Extractor turns raw page content into job records.
type Extractor interface {
	// Extract returns the records found in content, in source order.
	// Finding no records is not an error.
	Extract(content string) ([]*Job, error)
}

// ItemExtractor is implemented by extractors that can explain why individual
// listing items did not produce a record.
type ItemExtractor interface {
	Extractor

	// ExtractItems returns one result per candidate item, in source order.
	ExtractItems(content string) ([]ItemResult, error)
}

// SkipReason explains why a candidate item did not produce a record.
type SkipReason string

// Skip reasons reported by extractors.
const (
	SkipMissingTitleLink SkipReason = "missing title link"
	SkipEmptyTitle       SkipReason = "empty title"
	SkipMissingLink      SkipReason = "missing link"
	SkipInvalidLink      SkipReason = "invalid link"
	SkipNestedTitle      SkipReason = "title link before company"
)

// ItemResult is the outcome of processing one candidate item.
// Exactly one of Job or Skip is set.
type ItemResult struct {
	// Position is the item index for HTML extractors and the zero-based
	// line number for line-oriented extractors.
	Position int
	Job      *Job
	Skip     SkipReason
}

// Skipped reports whether the item was skipped.
func (r ItemResult) Skipped() bool {
	return r.Job == nil
}

// Jobs returns the records of all non-skipped results, preserving order.
// The returned slice is never nil.
func Jobs(results []ItemResult) []*Job {
	jobs := make([]*Job, 0, len(results))
	for _, r := range results {
		if r.Job != nil {
			jobs = append(jobs, r.Job)
		}
	}
	return jobs
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// Ensure ConvertedExtractor implements Extractor at compile time.
var _ Extractor = (*ConvertedExtractor)(nil)

// ConvertedExtractor converts HTML to markdown before handing it to a
// markdown extractor. It lets the markdown heuristics run over pages that
// were fetched directly.
type ConvertedExtractor struct {
	Converter Converter
	Extractor Extractor
}

// Extract converts content and extracts records from the result.
func (e *ConvertedExtractor) Extract(content string) ([]*Job, error) {
	md, err := e.Converter.Convert(content)
	if err != nil {
		return nil, err
	}
	return e.Extractor.Extract(md)
}
