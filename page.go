package pressroom

import "context"

// Page is a published article ready to be written out.
type Page struct {
	Slug        string
	Title       string
	SourceURL   string
	HTML        string // processed HTML
	Markdown    string // optional Markdown rendition
	ReadingTime int    // minutes
	TOC         []HeadingEntry
}

// PageStore persists pages to storage with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
