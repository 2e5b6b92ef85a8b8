// Package trafilatura extracts article bodies from published pages
// with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pressroom"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pressroom.Extractor at compile time.
var _ pressroom.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. Links and images in the article body are
// kept and reader comments are dropped.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and article body of a full HTML page.
// Returns EINVALID if the page is empty or has no recognizable body.
func (e *Extractor) Extract(rawHTML string) (*pressroom.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pressroom.Errorf(pressroom.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   true,
		IncludeLinks:    true,
	})
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, pressroom.Errorf(pressroom.EINVALID, "no article content found")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &pressroom.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
	}, nil
}
