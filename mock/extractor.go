package mock

import "github.com/fwojciec/jobkorea"

var _ jobkorea.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of jobkorea.Extractor.
type Extractor struct {
	ExtractFn func(content string) ([]*jobkorea.Job, error)
}

func (e *Extractor) Extract(content string) ([]*jobkorea.Job, error) {
	return e.ExtractFn(content)
}

var _ jobkorea.StrategyExtractor = (*StrategyExtractor)(nil)

// StrategyExtractor is a mock implementation of jobkorea.StrategyExtractor.
type StrategyExtractor struct {
	ExtractFn             func(content string) ([]*jobkorea.Job, error)
	ExtractWithStrategyFn func(content string) (*jobkorea.ChainResult, error)
}

func (e *StrategyExtractor) Extract(content string) ([]*jobkorea.Job, error) {
	return e.ExtractFn(content)
}

func (e *StrategyExtractor) ExtractWithStrategy(content string) (*jobkorea.ChainResult, error) {
	return e.ExtractWithStrategyFn(content)
}

var _ jobkorea.Converter = (*Converter)(nil)

// Converter is a mock implementation of jobkorea.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
