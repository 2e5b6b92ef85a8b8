package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pressroom"
)

// Ensure LinkExtractor implements pressroom.LinkExtractor at compile time.
var _ pressroom.LinkExtractor = (*LinkExtractor)(nil)

// contentSelectors locate the post listing on an index page, most
// specific first. The first selector that matches anything wins.
var contentSelectors = []string{
	".post-list",
	".posts",
	".post-feed",
	".archive",
	"main",
	"[role=main]",
	"#content",
	".content",
	"body",
}

// chromeSelectors mark page chrome whose links are never articles.
// Headers and footers inside an article card are not chrome.
const chromeSelectors = "nav, header, footer, aside, [role=navigation], .pagination, .nav-links"

// LinkExtractor finds article links on blog index and archive pages.
// Only links under the index page's path and on the same host are kept.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns article URLs found in the listing area of html.
func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, pressroom.Errorf(pressroom.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pressroom.Errorf(pressroom.EINVALID, "failed to parse HTML: %v", err)
	}

	var area *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			area = sel
			break
		}
	}
	if area == nil {
		return []string{}, nil
	}

	section := base.Path
	if section == "" {
		section = "/"
	}
	if !strings.HasSuffix(section, "/") {
		section = section[:strings.LastIndex(section, "/")+1]
	}

	seen := make(map[string]bool)
	links := []string{}

	area.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if chrome := sel.Closest(chromeSelectors); chrome.Length() > 0 && chrome.Closest("article").Length() == 0 {
			return
		}
		if isTaxonomyLink(sel.AttrOr("rel", "")) {
			return
		}

		href := sel.AttrOr("href", "")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil || resolved.Host != base.Host {
			return
		}
		if !strings.HasPrefix(resolved.Path, section) || resolved.Path == section {
			return
		}

		u := resolved.String()
		if seen[u] {
			return
		}
		seen[u] = true
		links = append(links, u)
	})

	return links, nil
}

// resolveURL resolves href against base and strips the fragment.
// Returns nil for unparseable hrefs and for links back to the base page.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	self := *base
	self.Fragment = ""
	if resolved.String() == self.String() {
		return nil
	}
	return resolved
}

// isNonHTTPLink reports whether href uses a scheme that is never a page.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}

// isTaxonomyLink reports whether a rel attribute marks a tag, category or
// author link.
func isTaxonomyLink(rel string) bool {
	for _, token := range strings.Fields(strings.ToLower(rel)) {
		switch token {
		case "tag", "category", "author":
			return true
		}
	}
	return false
}
