package mock

import "github.com/fwojciec/pressroom"

var _ pressroom.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pressroom.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pressroom.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pressroom.ExtractResult, error) {
	return e.ExtractFn(html)
}
