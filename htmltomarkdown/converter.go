// Package htmltomarkdown renders processed article HTML as Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pressroom"
)

// Ensure Converter implements pressroom.Converter at compile time.
var _ pressroom.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert article HTML to Markdown.
type Converter struct {
	conv       *converter.Converter
	domain     string
	headingIDs bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links and image sources against domain,
// e.g. "https://blog.example.com".
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// WithHeadingIDs appends {#id} attribute blocks to Markdown headings whose
// HTML heading carried an id, so anchors survive the conversion.
func WithHeadingIDs() Option {
	return func(c *Converter) {
		c.headingIDs = true
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
				strikethrough.NewStrikethroughPlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pressroom.Errorf(pressroom.EINVALID, "empty HTML input")
	}

	var md string
	var err error
	if c.domain != "" {
		md, err = c.conv.ConvertString(html, converter.WithDomain(c.domain))
	} else {
		md, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", err
	}

	if c.headingIDs {
		ids, err := headingIDs(html)
		if err != nil {
			return "", err
		}
		md = annotateHeadings(md, ids)
	}

	return md, nil
}

// headingIDs returns the id of every non-empty heading in document order,
// with "" for headings that have no id.
func headingIDs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pressroom.Errorf(pressroom.EINVALID, "failed to parse HTML: %v", err)
	}

	var ids []string
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if strings.TrimSpace(sel.Text()) != "" {
				ids = append(ids, sel.AttrOr("id", ""))
			}
		}
	})
	return ids, nil
}

var atxHeading = regexp.MustCompile(`^(?:>\s?)*#{1,6}\s+\S`)

// annotateHeadings pairs ATX headings outside code fences with ids in
// order. If the counts disagree the Markdown is returned unchanged rather
// than risk attaching an id to the wrong heading.
func annotateHeadings(md string, ids []string) string {
	lines := strings.Split(md, "\n")

	var headingLines []int
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if !inFence && atxHeading.MatchString(line) {
			headingLines = append(headingLines, i)
		}
	}

	if len(headingLines) != len(ids) {
		return md
	}

	for n, i := range headingLines {
		if ids[n] == "" {
			continue
		}
		lines[i] = strings.TrimRight(lines[i], " ") + " {#" + ids[n] + "}"
	}
	return strings.Join(lines, "\n")
}
