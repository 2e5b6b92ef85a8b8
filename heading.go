package pressroom

import (
	"strconv"
	"strings"
	"unicode"
)

// HeadingEntry is a single table of contents entry.
type HeadingEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// ProcessingResult holds processed article HTML and its table of contents.
type ProcessingResult struct {
	// ProcessedContent is the input HTML with newlines inserted between
	// block elements and an id attribute on every heading.
	ProcessedContent string `json:"processedContent"`

	// TOCItems lists headings in document order.
	TOCItems []HeadingEntry `json:"tocItems"`
}

// ContentProcessor injects heading anchors into HTML and extracts a
// table of contents. Implementations never fail: malformed input degrades
// to partial results.
type ContentProcessor interface {
	Process(html string) ProcessingResult
}

// Slugify converts heading text into a URL-fragment-safe anchor.
// Letters are lowercased, runs of whitespace and hyphens become a single
// hyphen, and every other character that is not a letter, digit or
// underscore is dropped. Leading and trailing hyphens are trimmed.
func Slugify(text string) string {
	var sb strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		}
	}

	return sb.String()
}

// IDSet tracks anchor ids already used within one document.
// A set must not be shared between documents.
type IDSet map[string]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// GenerateID returns a slug for text that is not yet in existing, appending
// -1, -2, ... on collision, and records the result in existing. Text with
// no usable characters uses the base "heading". A nil set is treated as
// empty and is not modified.
func GenerateID(text string, existing IDSet) string {
	base := Slugify(text)
	if base == "" {
		base = "heading"
	}
	return ClaimID(base, existing)
}

// ClaimID returns candidate, or candidate with the first free numeric
// suffix, and records the result in existing.
func ClaimID(candidate string, existing IDSet) string {
	id := candidate
	for n := 1; existing.Has(id); n++ {
		id = candidate + "-" + strconv.Itoa(n)
	}
	if existing != nil {
		existing.Add(id)
	}
	return id
}
