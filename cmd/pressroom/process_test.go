package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/pressroom"
	main "github.com/fwojciec/pressroom/cmd/pressroom"
	"github.com/fwojciec/pressroom/goquery"
	prhtml "github.com/fwojciec/pressroom/html"
	"github.com/fwojciec/pressroom/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const article = `<h1>Getting Started</h1><p>Install the tool.</p><h2>Setup &amp; Config</h2><p>Edit the file.</p><h3>Advanced</h3>`

func newDeps(stdin string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdin:     strings.NewReader(stdin),
		Stdout:    stdout,
		Stderr:    stderr,
		Processor: prhtml.NewProcessor(),
		Estimator: prhtml.NewEstimator(),
		Checker:   goquery.NewChecker(),
	}, stdout, stderr
}

func TestProcessCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints processed HTML from stdin", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(article)

		err := (&main.ProcessCmd{File: "-"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, `<h1 id="getting-started">Getting Started</h1>`)
		assert.Contains(t, output, `<h2 id="setup-config">Setup &amp; Config</h2>`)
		assert.True(t, strings.HasSuffix(output, "\n"))
	})

	t.Run("reads from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "post.html")
		require.NoError(t, os.WriteFile(path, []byte("<h2>From File</h2>"), 0644))
		deps, stdout, _ := newDeps("")

		err := (&main.ProcessCmd{File: path}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "<h2 id=\"from-file\">From File</h2>\n", stdout.String())
	})

	t.Run("prints JSON result", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(article)

		err := (&main.ProcessCmd{File: "-", JSON: true}).Run(deps)

		require.NoError(t, err)
		var result pressroom.ProcessingResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		assert.Equal(t, []pressroom.HeadingEntry{
			{ID: "getting-started", Title: "Getting Started", Level: 1},
			{ID: "setup-config", Title: "Setup & Config", Level: 2},
			{ID: "advanced", Title: "Advanced", Level: 3},
		}, result.TOCItems)
		assert.Contains(t, stdout.String(), `"tocItems"`)
		assert.Contains(t, stdout.String(), `<h3 id=\"advanced\">`, "HTML is not escaped")
	})

	t.Run("empty input yields empty toc array in JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps("")

		err := (&main.ProcessCmd{File: "-", JSON: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"tocItems": []`)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps("")

		err := (&main.ProcessCmd{File: filepath.Join(t.TempDir(), "missing.html")}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, pressroom.ENOTFOUND, pressroom.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}

func TestTocCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints nested list", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(article)

		err := (&main.TocCmd{File: "-"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"- Getting Started (#getting-started)\n"+
				"  - Setup & Config (#setup-config)\n"+
				"    - Advanced (#advanced)\n",
			stdout.String())
	})

	t.Run("reports missing headings", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps("<p>No headings here.</p>")

		err := (&main.TocCmd{File: "-"}).Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "No headings found")
	})
}

func TestFormatTOC(t *testing.T) {
	t.Parallel()

	t.Run("indents relative to shallowest level", func(t *testing.T) {
		t.Parallel()

		got := main.FormatTOC([]pressroom.HeadingEntry{
			{ID: "a", Title: "A", Level: 2},
			{ID: "b", Title: "B", Level: 3},
			{ID: "c", Title: "C", Level: 2},
		})

		assert.Equal(t, "- A (#a)\n  - B (#b)\n- C (#c)\n", got)
	})

	t.Run("returns empty string for no entries", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, main.FormatTOC(nil))
	})
}

func TestReadtimeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints one minute for short article", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(article)

		require.NoError(t, (&main.ReadtimeCmd{File: "-"}).Run(deps))
		assert.Equal(t, "1 min read\n", stdout.String())
	})

	t.Run("rounds up long articles", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps("<p>" + strings.Repeat("word ", 451) + "</p>")

		require.NoError(t, (&main.ReadtimeCmd{File: "-"}).Run(deps))
		assert.Equal(t, "3 min read\n", stdout.String())
	})
}

func TestCheckCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports no issues for clean article", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(`<h2>Intro</h2><p>See <a href="#intro">intro</a>.</p>`)

		err := (&main.CheckCmd{File: "-"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No issues found")
	})

	t.Run("fails on issues in processed article", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(`<h2>Notes</h2><h2>Notes</h2><h4>Deep</h4><a href="#missing">x</a>`)

		err := (&main.CheckCmd{File: "-"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, pressroom.EINVALID, pressroom.ErrorCode(err))
		output := stdout.String()
		assert.Contains(t, output, "duplicate-id")
		assert.Contains(t, output, "skipped-level")
		assert.Contains(t, output, "broken-anchor")
		assert.Contains(t, pressroom.ErrorMessage(err), "3 issue(s)")
	})

	t.Run("unique ids remove duplicate findings", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(`<h2>Notes</h2><h2>Notes</h2>`)
		deps.Processor = prhtml.NewProcessor(prhtml.WithUniqueIDs())

		err := (&main.CheckCmd{File: "-"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No issues found")
	})

	t.Run("passes processed HTML to checker and lists its issues", func(t *testing.T) {
		t.Parallel()

		var checked string
		deps, stdout, _ := newDeps(`<h2>Intro</h2>`)
		deps.Checker = &mock.ContentChecker{
			CheckFn: func(html string) ([]pressroom.Issue, error) {
				checked = html
				return []pressroom.Issue{
					{Kind: pressroom.IssueEmptyHeading, Target: "heading-2", Message: "heading has no text"},
				}, nil
			},
		}

		err := (&main.CheckCmd{File: "-"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, `<h2 id="intro">Intro</h2>`, checked)
		assert.Equal(t, "empty-heading  heading-2            heading has no text\n", stdout.String())
		assert.Equal(t, "1 issue(s) found", pressroom.ErrorMessage(err))
	})

	t.Run("reports checker errors", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(`<h2>Intro</h2>`)
		deps.Checker = &mock.ContentChecker{
			CheckFn: func(string) ([]pressroom.Issue, error) {
				return nil, pressroom.Errorf(pressroom.EINVALID, "cannot parse HTML")
			},
		}

		err := (&main.CheckCmd{File: "-"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, pressroom.EINVALID, pressroom.ErrorCode(err))
		assert.Equal(t, "error: cannot parse HTML\n", stderr.String())
		assert.Empty(t, stdout.String())
	})

	t.Run("raw mode skips processing", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(`<h2>Intro</h2><a href="#intro">x</a>`)

		err := (&main.CheckCmd{File: "-", Raw: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "broken-anchor")
	})
}

func TestSlugCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps("")

	err := (&main.SlugCmd{Texts: []string{"Hello World", "Hello World", "!!!", "!!!"}}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "hello-world\nhello-world-1\nheading\nheading-1\n", stdout.String())
}
