// Package fs publishes pages as files on the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/pressroom"
	"gopkg.in/yaml.v3"
)

var _ pressroom.PageStore = (*FileStore)(nil)

// MarkerFile marks a directory as build output. Commit only replaces an
// existing directory that is empty or contains it.
const MarkerFile = ".pressroom"

// FileStore implements pressroom.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved into place on Commit.
// The filesystem root, the home directory and directories holding files
// not written by a FileStore are never replaced.
//
// Each page produces <slug>.html and, when the page has a Markdown
// rendition, <slug>.md with YAML frontmatter. Save is safe for concurrent
// use with distinct slugs.
type FileStore struct {
	baseDir string
	name    string

	once    sync.Once
	initErr error
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the page into the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *pressroom.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if page.Slug == "" || pressroom.Slugify(page.Slug) != page.Slug {
		return pressroom.Errorf(pressroom.EINVALID, "invalid page slug %q", page.Slug)
	}

	if err := s.init(); err != nil {
		return err
	}
	dir := s.tempDir()

	if err := os.WriteFile(filepath.Join(dir, page.Slug+".html"), []byte(page.HTML), 0644); err != nil {
		return err
	}

	if page.Markdown == "" {
		return nil
	}
	md, err := FormatMarkdown(page)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, page.Slug+".md"), []byte(md), 0644)
}

// init checks the output directory, clears leftovers of an interrupted
// build and creates the temporary directory with its marker.
func (s *FileStore) init() error {
	s.once.Do(func() {
		s.initErr = s.prepare()
	})
	return s.initErr
}

func (s *FileStore) prepare() error {
	if err := checkTarget(s.finalDir()); err != nil {
		return err
	}
	if err := checkReplaceable(s.finalDir()); err != nil {
		return err
	}
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), MarkerFile), nil, 0644)
}

// checkTarget rejects output directories whose replacement would destroy
// unrelated data.
func checkTarget(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if filepath.Dir(abs) == abs {
		return pressroom.Errorf(pressroom.EINVALID, "refusing to build into filesystem root %s", abs)
	}
	if home, err := os.UserHomeDir(); err == nil && abs == filepath.Clean(home) {
		return pressroom.Errorf(pressroom.EINVALID, "refusing to build into home directory %s", abs)
	}
	return nil
}

// checkReplaceable returns ECONFLICT if dir holds files and no marker.
func checkReplaceable(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	if _, err := os.Stat(filepath.Join(dir, MarkerFile)); err == nil {
		return nil
	}
	return pressroom.Errorf(pressroom.ECONFLICT, "%s is not empty and was not built by pressroom", dir)
}

// Frontmatter is the YAML header of a published Markdown file.
type Frontmatter struct {
	Title       string     `yaml:"title"`
	Source      string     `yaml:"source,omitempty"`
	ReadingTime string     `yaml:"reading_time"`
	TOC         []TOCEntry `yaml:"toc,omitempty"`
}

// TOCEntry is a table of contents entry in frontmatter.
type TOCEntry struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Level int    `yaml:"level"`
}

// FormatMarkdown renders the page's Markdown with YAML frontmatter.
func FormatMarkdown(page *pressroom.Page) (string, error) {
	fm := Frontmatter{
		Title:       page.Title,
		Source:      page.SourceURL,
		ReadingTime: pressroom.FormatReadingTime(page.ReadingTime),
	}
	for _, h := range page.TOC {
		fm.TOC = append(fm.TOC, TOCEntry{ID: h.ID, Title: h.Title, Level: h.Level})
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Markdown)
	if !strings.HasSuffix(page.Markdown, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Commit replaces the output directory with the pages saved so far. The
// previous output is moved aside first and restored if the swap fails.
func (s *FileStore) Commit() error {
	// A build with no pages still publishes an empty directory.
	if err := s.init(); err != nil {
		return err
	}
	final := s.finalDir()
	if err := checkReplaceable(final); err != nil {
		return err
	}

	old := filepath.Join(s.baseDir, s.name+".old")
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	if err := os.Rename(final, old); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Rename(s.tempDir(), final); err != nil {
		_ = os.Rename(old, final)
		return err
	}
	return os.RemoveAll(old)
}

// Abort discards the pages saved so far.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
