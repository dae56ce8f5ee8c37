package jobkorea

// Strategy is a named extractor in a Chain.
type Strategy struct {
	Name      string
	Extractor Extractor
}

// ChainResult holds the records produced by a chain and the strategy that
// produced them. Strategy is empty when no strategy found anything.
type ChainResult struct {
	Jobs     []*Job
	Strategy string
}

// StrategyExtractor is implemented by extractors that can report which of
// their strategies produced the result.
type StrategyExtractor interface {
	Extractor
	ExtractWithStrategy(content string) (*ChainResult, error)
}

// Ensure Chain implements StrategyExtractor at compile time.
var _ StrategyExtractor = (*Chain)(nil)

// Chain tries extraction strategies in order and returns the result of the
// first one that finds at least one record. Later strategies never run once
// an earlier one succeeds, so results are never mixed across strategies.
type Chain struct {
	Strategies []Strategy
}

// NewChain returns a chain over the given strategies.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{Strategies: strategies}
}

// Extract returns the records of the first non-empty strategy.
func (c *Chain) Extract(content string) ([]*Job, error) {
	res, err := c.ExtractWithStrategy(content)
	if err != nil {
		return nil, err
	}
	return res.Jobs, nil
}

// ExtractWithStrategy is like Extract but also reports the winning strategy.
// A failing strategy does not stop the chain; its error is returned only
// when no strategy produced any record.
func (c *Chain) ExtractWithStrategy(content string) (*ChainResult, error) {
	var firstErr error
	for _, s := range c.Strategies {
		jobs, err := s.Extractor.Extract(content)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if len(jobs) > 0 {
			return &ChainResult{Jobs: jobs, Strategy: s.Name}, nil
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return &ChainResult{Jobs: []*Job{}}, nil
}
