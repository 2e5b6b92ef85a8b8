package mock

import "github.com/fwojciec/pressroom"

var (
	_ pressroom.ContentProcessor     = (*ContentProcessor)(nil)
	_ pressroom.ReadingTimeEstimator = (*ReadingTimeEstimator)(nil)
	_ pressroom.ContentChecker       = (*ContentChecker)(nil)
)

// ContentProcessor is a mock implementation of pressroom.ContentProcessor.
type ContentProcessor struct {
	ProcessFn func(html string) pressroom.ProcessingResult
}

func (p *ContentProcessor) Process(html string) pressroom.ProcessingResult {
	return p.ProcessFn(html)
}

// ReadingTimeEstimator is a mock implementation of pressroom.ReadingTimeEstimator.
type ReadingTimeEstimator struct {
	EstimateFn func(content string) int
}

func (e *ReadingTimeEstimator) Estimate(content string) int {
	return e.EstimateFn(content)
}

// ContentChecker is a mock implementation of pressroom.ContentChecker.
type ContentChecker struct {
	CheckFn func(html string) ([]pressroom.Issue, error)
}

func (c *ContentChecker) Check(html string) ([]pressroom.Issue, error) {
	return c.CheckFn(html)
}
