package mock

import "github.com/fwojciec/pressroom"

var _ pressroom.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of pressroom.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
