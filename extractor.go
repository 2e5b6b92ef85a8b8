package pressroom

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts the article body from full HTML pages.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}

// LinkExtractor finds article links on a blog index or archive page.
type LinkExtractor interface {
	// ExtractLinks returns absolute same-host URLs in document order,
	// without duplicates. Returns EINVALID if baseURL cannot be parsed.
	ExtractLinks(html, baseURL string) ([]string, error)
}
