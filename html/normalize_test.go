package html_test

import (
	"testing"

	prhtml "github.com/fwojciec/pressroom/html"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "separates adjacent paragraphs",
			in:   `<p>One</p><p>Two</p>`,
			want: "<p>One</p>\n\n<p>Two</p>",
		},
		{
			name: "tops up existing single newline",
			in:   "<p>One</p>\n<p>Two</p>",
			want: "<p>One</p>\n\n<p>Two</p>",
		},
		{
			name: "separates list from following tag",
			in:   `<ul><li>a</li></ul><p>b</p>`,
			want: "<ul><li>a</li></ul>\n\n<p>b</p>",
		},
		{
			name: "separates text after closing heading",
			in:   `<h1>T</h1>text`,
			want: "<h1>T</h1>\n\ntext",
		},
		{
			name: "leaves heading followed by tag alone",
			in:   `<h1>T</h1><p>x</p>`,
			want: `<h1>T</h1><p>x</p>`,
		},
		{
			name: "separates lower headings from preceding content",
			in:   `<p>x</p><h2>A</h2><h6>B</h6>`,
			want: "<p>x</p>\n\n<h2>A</h2>\n\n<h6>B</h6>",
		},
		{
			name: "does not separate heading at document start",
			in:   "  <h2>A</h2>",
			want: "  <h2>A</h2>",
		},
		{
			name: "does not separate h1",
			in:   `<p>x</p><h1>A</h1>`,
			want: `<p>x</p><h1>A</h1>`,
		},
		{
			name: "breaks lines around divs",
			in:   `<div><h1>Guide</h1>Intro text<p>One</p><p>Two</p><ul><li>a</li></ul><h2>Next</h2></div><p>End</p>`,
			want: "<div>\n<h1>Guide</h1>\n\nIntro text<p>One</p>\n\n<p>Two</p><ul><li>a</li></ul>\n\n<h2>Next</h2>\n</div>\n\n<p>End</p>",
		},
		{
			name: "leaves preformatted content alone",
			in:   `<p>a</p><pre><p>x</p><p>y</p></pre>`,
			want: `<p>a</p><pre><p>x</p><p>y</p></pre>`,
		},
		{
			name: "appends nothing at end of input",
			in:   `<h2>A</h2>`,
			want: `<h2>A</h2>`,
		},
		{
			name: "returns empty for empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := prhtml.Normalize(tt.in)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, prhtml.Normalize(got), "normalizing twice must not change output")
		})
	}
}
