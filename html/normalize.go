package html

import (
	"strings"

	"golang.org/x/net/html"
)

// lastToken classifies the most recent non-whitespace token written by
// the normalizer.
type lastToken int

const (
	lastNone lastToken = iota
	lastText
	lastOther
	lastHeadingEnd
	lastParagraphEnd
	lastListEnd
	lastDivStart
	lastDivEnd
)

// Normalize inserts newlines between block elements so the HTML source
// reads well and diffs cleanly. Only whitespace between elements changes.
// Every rule ensures a minimum number of newlines in the gap instead of
// appending unconditionally, so normalizing twice gives the same output.
// Content of pre, textarea, script and style elements is left alone.
func Normalize(content string) string {
	n := &normalizer{}
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		raw := string(z.Raw())
		if tt == html.ErrorToken {
			// Raw holds any unterminated markup left at EOF.
			n.out.WriteString(raw)
			break
		}
		name, _ := z.TagName()
		n.write(tt, string(name), raw)
	}
	return n.out.String()
}

type normalizer struct {
	out      strings.Builder
	last     lastToken
	preDepth int
}

func (n *normalizer) write(tt html.TokenType, name, raw string) {
	if n.preDepth > 0 {
		n.out.WriteString(raw)
		switch {
		case tt == html.StartTagToken && isPreformatted(name):
			n.preDepth++
		case tt == html.EndTagToken && isPreformatted(name):
			n.preDepth--
			n.last = lastOther
		}
		return
	}

	switch tt {
	case html.TextToken:
		if strings.TrimSpace(raw) == "" {
			n.out.WriteString(raw)
			return
		}
		switch n.last {
		case lastHeadingEnd:
			n.ensureNewlines(2, raw)
		case lastDivStart:
			n.ensureNewlines(1, raw)
		}
		n.out.WriteString(raw)
		n.last = lastText
		return

	case html.StartTagToken:
		n.beforeTag()
		switch {
		case isHeading(name) && name != "h1" && n.last != lastNone:
			n.ensureNewlines(2, "")
		case name == "p" && n.last == lastParagraphEnd:
			n.ensureNewlines(2, "")
		case name == "div" && n.last != lastNone:
			n.ensureNewlines(1, "")
		}
		n.out.WriteString(raw)
		switch {
		case name == "div":
			n.last = lastDivStart
		case isPreformatted(name):
			n.preDepth++
			n.last = lastOther
		default:
			n.last = lastOther
		}
		return

	case html.EndTagToken:
		n.beforeTag()
		if name == "div" {
			n.ensureNewlines(1, "")
		}
		n.out.WriteString(raw)
		switch {
		case isHeading(name):
			n.last = lastHeadingEnd
		case name == "p":
			n.last = lastParagraphEnd
		case name == "ul" || name == "ol":
			n.last = lastListEnd
		case name == "div":
			n.last = lastDivEnd
		default:
			n.last = lastOther
		}
		return
	}

	// Self-closing tags, comments and doctypes.
	n.beforeTag()
	n.out.WriteString(raw)
	n.last = lastOther
}

// beforeTag applies the rules that depend on the previous token being
// followed by a tag.
func (n *normalizer) beforeTag() {
	switch n.last {
	case lastListEnd, lastDivEnd:
		n.ensureNewlines(2, "")
	case lastDivStart:
		n.ensureNewlines(1, "")
	}
}

// ensureNewlines writes enough newlines that the whitespace gap between the
// output so far and next contains at least want of them.
func (n *normalizer) ensureNewlines(want int, next string) {
	have := countNewlines(trailingSpace(n.out.String())) + countNewlines(leadingSpace(next))
	if have < want {
		n.out.WriteString(strings.Repeat("\n", want-have))
	}
}

func trailingSpace(s string) string {
	i := len(s)
	for i > 0 && isASCIISpace(s[i-1]) {
		i--
	}
	return s[i:]
}

func leadingSpace(s string) string {
	i := 0
	for i < len(s) && isASCIISpace(s[i]) {
		i++
	}
	return s[:i]
}

func countNewlines(s string) int {
	return strings.Count(s, "\n")
}

func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isPreformatted(name string) bool {
	return name == "pre" || name == "textarea" || name == "script" || name == "style"
}
