package html_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pressroom"
	prhtml "github.com/fwojciec/pressroom/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Processor implements pressroom.ContentProcessor at compile time.
var _ pressroom.ContentProcessor = (*prhtml.Processor)(nil)

func TestProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("returns empty result for empty input", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor().Process("")

		assert.Empty(t, result.ProcessedContent)
		assert.NotNil(t, result.TOCItems)
		assert.Empty(t, result.TOCItems)
	})

	t.Run("collects headings in document order", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Title</h1><p>Intro</p><h3>Deep</h3><p>a</p><h2>Shallow</h2>`

		result := prhtml.NewProcessor().Process(html)

		assert.Equal(t, []pressroom.HeadingEntry{
			{ID: "title", Title: "Title", Level: 1},
			{ID: "deep", Title: "Deep", Level: 3},
			{ID: "shallow", Title: "Shallow", Level: 2},
		}, result.TOCItems)
	})

	t.Run("injects ids and separates headings", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Title</h1><p>Intro</p><h2>First</h2><p>a</p>`

		result := prhtml.NewProcessor().Process(html)

		assert.Equal(t, `<h1 id="title">Title</h1><p>Intro</p>`+"\n\n"+`<h2 id="first">First</h2><p>a</p>`, result.ProcessedContent)
	})

	t.Run("strips inline markup from titles", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor().Process(`<h2>Hello <em>World</em></h2>`)

		require.Len(t, result.TOCItems, 1)
		assert.Equal(t, "Hello World", result.TOCItems[0].Title)
		assert.Equal(t, "hello-world", result.TOCItems[0].ID)
		assert.Equal(t, `<h2 id="hello-world">Hello <em>World</em></h2>`, result.ProcessedContent)
	})

	t.Run("decodes entities in titles", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor().Process(`<h2>Q&amp;A <code>v2</code></h2>`)

		require.Len(t, result.TOCItems, 1)
		assert.Equal(t, "Q&A v2", result.TOCItems[0].Title)
		assert.Equal(t, "qa-v2", result.TOCItems[0].ID)
	})

	t.Run("falls back to positional id for punctuation-only heading", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor().Process(`<h2>Intro</h2><h3>!!!</h3>`)

		require.Len(t, result.TOCItems, 2)
		assert.Equal(t, pressroom.HeadingEntry{ID: "heading-2", Title: "!!!", Level: 3}, result.TOCItems[1])
		assert.Contains(t, result.ProcessedContent, `<h3 id="heading-2">!!!</h3>`)
	})

	t.Run("falls back to positional id for empty heading", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor().Process(`<h2></h2>`)

		assert.Equal(t, []pressroom.HeadingEntry{{ID: "heading-1", Title: "", Level: 2}}, result.TOCItems)
		assert.Equal(t, `<h2 id="heading-1"></h2>`, result.ProcessedContent)
	})

	t.Run("keeps existing id untouched", func(t *testing.T) {
		t.Parallel()

		html := `<h2 id="existing-id">Text</h2>`

		result := prhtml.NewProcessor().Process(html)

		assert.Equal(t, html, result.ProcessedContent)
		assert.Equal(t, []pressroom.HeadingEntry{{ID: "existing-id", Title: "Text", Level: 2}}, result.TOCItems)
	})

	t.Run("matches existing id case-insensitively", func(t *testing.T) {
		t.Parallel()

		html := `<H2 ID="Keep-Me">Text</H2>`

		result := prhtml.NewProcessor().Process(html)

		assert.Equal(t, html, result.ProcessedContent)
		require.Len(t, result.TOCItems, 1)
		assert.Equal(t, "Keep-Me", result.TOCItems[0].ID)
	})

	t.Run("appends id after existing attributes", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor().Process(`<h2 class="title" data-x="1" >Setup</h2>`)

		assert.Equal(t, `<h2 class="title" data-x="1" id="setup">Setup</h2>`, result.ProcessedContent)
	})

	// Headings with the same text share an id by default. Anchor links
	// to the second heading jump to the first; WithUniqueIDs fixes it.
	t.Run("reuses id for duplicate headings by default", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor().Process(`<h2>Setup</h2><h2>Setup</h2>`)

		require.Len(t, result.TOCItems, 2)
		assert.Equal(t, "setup", result.TOCItems[0].ID)
		assert.Equal(t, "setup", result.TOCItems[1].ID)
		assert.Equal(t, `<h2 id="setup">Setup</h2>`+"\n\n"+`<h2 id="setup">Setup</h2>`, result.ProcessedContent)
	})

	t.Run("suffixes duplicate ids with unique ids option", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor(prhtml.WithUniqueIDs()).Process(`<h2>Setup</h2><h2>Setup</h2><h3>Setup</h3>`)

		require.Len(t, result.TOCItems, 3)
		assert.Equal(t, "setup", result.TOCItems[0].ID)
		assert.Equal(t, "setup-1", result.TOCItems[1].ID)
		assert.Equal(t, "setup-2", result.TOCItems[2].ID)
		assert.Contains(t, result.ProcessedContent, `<h3 id="setup-2">Setup</h3>`)
	})

	t.Run("avoids ids already in the markup with unique ids option", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor(prhtml.WithUniqueIDs()).Process(`<p id="setup">x</p><h2>Setup</h2>`)

		require.Len(t, result.TOCItems, 1)
		assert.Equal(t, "setup-1", result.TOCItems[0].ID)
	})

	t.Run("separates text that follows a heading", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor().Process(`<h2>A</h2>Text`)

		assert.Equal(t, `<h2 id="a">A</h2>`+"\n\nText", result.ProcessedContent)
	})

	t.Run("leaves unclosed heading unprocessed", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Broken<p>text</p>`

		result := prhtml.NewProcessor().Process(html)

		assert.Equal(t, html, result.ProcessedContent)
		assert.Empty(t, result.TOCItems)
	})

	t.Run("processes headings after an unclosed heading", func(t *testing.T) {
		t.Parallel()

		result := prhtml.NewProcessor().Process(`<h2>Broken<h3>Fine</h3>`)

		assert.Equal(t, "<h2>Broken\n\n"+`<h3 id="fine">Fine</h3>`, result.ProcessedContent)
		assert.Equal(t, []pressroom.HeadingEntry{{ID: "fine", Title: "Fine", Level: 3}}, result.TOCItems)
	})

	t.Run("handles many unclosed headings in linear time", func(t *testing.T) {
		t.Parallel()

		// 100KB of unclosed headings followed by one closed heading.
		html := strings.Repeat("<h2>x", 20000) + "<h3>End</h3>"

		begin := time.Now()
		result := prhtml.NewProcessor().Process(html)
		elapsed := time.Since(begin)

		assert.Less(t, elapsed, 2*time.Second)
		assert.Equal(t, []pressroom.HeadingEntry{{ID: "end", Title: "End", Level: 3}}, result.TOCItems)
		assert.Equal(t, 20000, strings.Count(result.ProcessedContent, "<h2>x"))
	})

	t.Run("does not panic on malformed markup", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			`<<h2>>>`,
			`<h2 class=>x</h2`,
			`</h2></h3><h4`,
			`<h1><h1><h1>`,
			`<h2><!-- unterminated`,
			"<h2>\x00</h2>",
		}
		for _, in := range inputs {
			assert.NotPanics(t, func() {
				prhtml.NewProcessor(prhtml.WithUniqueIDs()).Process(in)
			}, in)
		}
	})

	t.Run("is stable when applied twice", func(t *testing.T) {
		t.Parallel()

		html := `<div><h1>Guide</h1>Intro text<p>One</p><p>Two</p><ul><li>a</li></ul><h2>Next</h2><h2>!?</h2></div><p>End</p>`
		p := prhtml.NewProcessor()

		first := p.Process(html)
		second := p.Process(first.ProcessedContent)

		assert.Equal(t, first.ProcessedContent, second.ProcessedContent)
		assert.Equal(t, first.TOCItems, second.TOCItems)
	})

	t.Run("heading count matches toc length", func(t *testing.T) {
		t.Parallel()

		html := `<h1>A</h1><h2>B</h2><h3>C</h3><h4>D</h4><h5>E</h5><h6>F</h6><p>x</p><h2>G</h2>`

		result := prhtml.NewProcessor().Process(html)

		require.Len(t, result.TOCItems, 7)
		for i, level := range []int{1, 2, 3, 4, 5, 6, 2} {
			assert.Equal(t, level, result.TOCItems[i].Level)
		}
	})
}
