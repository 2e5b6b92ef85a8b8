package publish

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/pressroom"
)

// SlugFromURL derives an article slug from the last path segment of a URL.
// Page extensions are dropped, so "/posts/hello-world.html" becomes
// "hello-world". Other dots become hyphens. The site root maps to "index".
func SlugFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", pressroom.Errorf(pressroom.EINVALID, "invalid article URL %q", rawURL)
	}

	segment := path.Base(strings.TrimSuffix(u.Path, "/"))
	if segment == "." || segment == "/" {
		return "index", nil
	}
	switch ext := path.Ext(segment); strings.ToLower(ext) {
	case ".html", ".htm", ".php", ".asp", ".aspx":
		segment = strings.TrimSuffix(segment, ext)
	}

	slug := pressroom.Slugify(strings.ReplaceAll(segment, ".", "-"))
	if slug == "" {
		return "", pressroom.Errorf(pressroom.EINVALID, "cannot derive slug from %q", rawURL)
	}
	return slug, nil
}

// TruncateURL shortens a URL for display, keeping the more informative end.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
