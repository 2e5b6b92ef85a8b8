// Package readability extracts article bodies from published pages
// with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/pressroom"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pressroom.Extractor at compile time.
var _ pressroom.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and article body of a full HTML page.
// Returns EINVALID if the page is empty or has no readable body.
func (e *Extractor) Extract(rawHTML string) (*pressroom.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pressroom.Errorf(pressroom.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, pressroom.Errorf(pressroom.EINVALID, "no article content found")
	}

	return &pressroom.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
