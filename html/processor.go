// Package html implements article post-processing on top of the
// golang.org/x/net/html tokenizer. Markup is streamed token by token and
// copied through verbatim, so only the inserted newlines and heading ids
// differ from the input.
package html

import (
	"strconv"
	"strings"

	"github.com/fwojciec/pressroom"
	"golang.org/x/net/html"
)

// Ensure Processor implements pressroom.ContentProcessor at compile time.
var _ pressroom.ContentProcessor = (*Processor)(nil)

// Processor normalizes article HTML, gives every heading an id and
// collects the table of contents.
type Processor struct {
	uniqueIDs bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithUniqueIDs makes generated heading ids unique within a document.
// Candidates that collide with an earlier heading or with any id already
// present in the markup get a numeric suffix. Without this option two
// headings with the same text receive the same id.
func WithUniqueIDs() Option {
	return func(p *Processor) {
		p.uniqueIDs = true
	}
}

// NewProcessor creates a new Processor.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process normalizes content and injects heading ids.
// It never fails; headings without a closing tag are left untouched.
func (p *Processor) Process(content string) pressroom.ProcessingResult {
	result := pressroom.ProcessingResult{TOCItems: []pressroom.HeadingEntry{}}
	if content == "" {
		return result
	}

	normalized := Normalize(content)

	inj := &injector{toc: result.TOCItems}
	if p.uniqueIDs {
		inj.ids = collectIDs(normalized)
	}
	inj.run(tokenize(normalized))

	result.ProcessedContent = inj.out.String()
	result.TOCItems = inj.toc
	return result
}

// token is one tokenizer token with the parts the injector needs.
type token struct {
	typ   html.TokenType
	raw   string
	name  string           // tag name of tag tokens
	text  string           // decoded text of text tokens
	attrs []html.Attribute // heading start tags only
}

// tokenize splits content into tokens. Unterminated markup at EOF ends up
// in the raw text of a final error token.
func tokenize(content string) []token {
	var tokens []token
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		tok := token{typ: tt, raw: string(z.Raw())}
		switch tt {
		case html.ErrorToken:
			return append(tokens, tok)
		case html.TextToken:
			tok.text = string(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tok.name = string(name)
			if tt == html.StartTagToken && headingLevel(tok.name) > 0 {
				for hasAttr {
					var key, val []byte
					key, val, hasAttr = z.TagAttr()
					tok.attrs = append(tok.attrs, html.Attribute{Key: string(key), Val: string(val)})
				}
			}
		}
		tokens = append(tokens, tok)
	}
}

// matchCloses returns, for each heading start tag, the index of the first
// later end tag with the same name, and -1 everywhere else. Everything in
// between is the heading's content.
func matchCloses(tokens []token) []int {
	closeAt := make([]int, len(tokens))
	var next [7]int
	for level := range next {
		next[level] = -1
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		closeAt[i] = -1
		level := headingLevel(tokens[i].name)
		if level == 0 {
			continue
		}
		switch tokens[i].typ {
		case html.EndTagToken:
			next[level] = i
		case html.StartTagToken:
			closeAt[i] = next[level]
		}
	}
	return closeAt
}

// injector rewrites heading start tags in a single pass over the tokens.
type injector struct {
	out strings.Builder
	toc []pressroom.HeadingEntry
	ids pressroom.IDSet // nil unless unique ids are requested
}

func (inj *injector) run(tokens []token) {
	closeAt := matchCloses(tokens)
	for i := 0; i < len(tokens); i++ {
		end := closeAt[i]
		if end < 0 {
			// Unclosed headings fall through here and stay as they are.
			inj.out.WriteString(tokens[i].raw)
			continue
		}
		inj.heading(tokens[i : end+1])
		i = end
	}
}

// heading writes a closed heading: start tag, content and end tag.
func (inj *injector) heading(tokens []token) {
	start := tokens[0]
	inner := tokens[1 : len(tokens)-1]

	var text strings.Builder
	for _, tok := range inner {
		text.WriteString(tok.text)
	}
	title := strings.TrimSpace(text.String())
	startTag := start.raw

	id, ok := attrValue(start.attrs, "id")
	if !ok {
		id = pressroom.Slugify(title)
		if id == "" {
			id = "heading-" + strconv.Itoa(len(inj.toc)+1)
		}
		if inj.ids != nil {
			id = pressroom.ClaimID(id, inj.ids)
		}
		startTag = appendAttr(startTag, "id", id)
	}

	inj.toc = append(inj.toc, pressroom.HeadingEntry{
		ID:    id,
		Title: title,
		Level: headingLevel(start.name),
	})

	inj.out.WriteString(startTag)
	for _, tok := range inner {
		inj.out.WriteString(tok.raw)
	}
	inj.out.WriteString(tokens[len(tokens)-1].raw)
}

// appendAttr adds name="value" after the existing attributes of a raw
// start tag.
func appendAttr(startTag, name, value string) string {
	body := strings.TrimSuffix(startTag, ">")
	body = strings.TrimRight(body, " \t\n\r\f")
	return body + " " + name + `="` + html.EscapeString(value) + `">`
}

// attrValue looks up an attribute. The tokenizer lowercases attribute
// names, so the match is case-insensitive with respect to the source.
func attrValue(attrs []html.Attribute, name string) (string, bool) {
	for _, a := range attrs {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// collectIDs returns every id attribute value in content.
func collectIDs(content string) pressroom.IDSet {
	ids := pressroom.IDSet{}
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ids
		case html.StartTagToken, html.SelfClosingTagToken:
			if id, ok := attrValue(z.Token().Attr, "id"); ok {
				ids.Add(id)
			}
		}
	}
}

// headingLevel returns 1-6 for h1-h6 and 0 for any other tag name.
func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

func isHeading(name string) bool {
	return headingLevel(name) > 0
}
