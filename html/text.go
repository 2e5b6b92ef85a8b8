package html

import (
	"strings"

	"github.com/fwojciec/pressroom"
	"golang.org/x/net/html"
)

// Ensure Estimator implements pressroom.ReadingTimeEstimator at compile time.
var _ pressroom.ReadingTimeEstimator = (*Estimator)(nil)

// Estimator estimates reading time from article HTML.
type Estimator struct{}

// NewEstimator creates a new Estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate returns the reading time of content in minutes, at least one.
func (e *Estimator) Estimate(content string) int {
	if content == "" {
		return 1
	}
	return pressroom.ReadingMinutes(pressroom.CountWords(Text(content)))
}

// Text returns the readable text of an HTML fragment with whitespace
// collapsed. Tags are dropped, entities decoded, and script and style
// bodies and comments skipped. Block-level tags separate words; inline
// tags do not.
func Text(content string) string {
	var sb strings.Builder
	skip := 0

	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			tt := z.Token()
			switch {
			case tt.Data == "script" || tt.Data == "style":
				if tt.Type == html.StartTagToken {
					skip++
				} else if tt.Type == html.EndTagToken && skip > 0 {
					skip--
				}
			case blockElements[tt.Data]:
				sb.WriteByte(' ')
			}
		}
	}
}

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "figure": true, "footer": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}
