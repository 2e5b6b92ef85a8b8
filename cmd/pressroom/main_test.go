package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/pressroom/cmd/pressroom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against the database at dbPath.
func run(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()

	m := main.NewMain()
	m.DBPath = dbPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, strings.NewReader(""), stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_ImportBuildListDelete(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"/posts/hello-world": `<h1>Hello World</h1><p>Welcome.</p><h2>Getting Started</h2><p>See <a href="#getting-started">above</a>.</p>`,
		"/posts/second-post": `<h2>Notes</h2><p>Short.</p>`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "pressroom.db")
	site := filepath.Join(dir, "site")

	stdout, stderr, err := run(t, dbPath, "import", "--extract", "none", "--rate", "0",
		srv.URL+"/posts/hello-world", srv.URL+"/posts/second-post")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Imported 2 articles (2 new, 0 updated, 0 unchanged")

	t.Run("reimport leaves articles unchanged", func(t *testing.T) {
		stdout, stderr, err := run(t, dbPath, "import", "--extract", "none", "--rate", "0",
			srv.URL+"/posts/hello-world")
		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "(0 new, 0 updated, 1 unchanged")
	})

	t.Run("list shows imported articles", func(t *testing.T) {
		stdout, stderr, err := run(t, dbPath, "list")
		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "hello-world")
		assert.Contains(t, stdout, "second-post")
	})

	t.Run("build publishes processed pages", func(t *testing.T) {
		stdout, stderr, err := run(t, dbPath, "build", site)
		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "Built 2 pages with 3 headings")

		html, err := os.ReadFile(filepath.Join(site, "hello-world.html"))
		require.NoError(t, err)
		assert.Contains(t, string(html), `<h1 id="hello-world">Hello World</h1>`)
		assert.Contains(t, string(html), `<h2 id="getting-started">Getting Started</h2>`)

		md, err := os.ReadFile(filepath.Join(site, "hello-world.md"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(md), "---\n"))
		assert.Contains(t, string(md), "title: Hello World\n")
		assert.Contains(t, string(md), "reading_time: 1 min read\n")

		_, err = os.Stat(site + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("delete removes article from next build", func(t *testing.T) {
		_, stderr, err := run(t, dbPath, "delete", "--force", "second-post")
		require.NoError(t, err, stderr)

		_, stderr, err = run(t, dbPath, "build", "--no-markdown", site)
		require.NoError(t, err, stderr)

		_, err = os.Stat(filepath.Join(site, "second-post.html"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(site, "hello-world.md"))
		assert.True(t, os.IsNotExist(err), "markdown disabled")
	})
}
