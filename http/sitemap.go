package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pressroom"
)

var _ pressroom.SitemapService = (*SitemapService)(nil)

// SitemapService lists article URLs from sitemaps over HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed by the sitemap at location.
//
// A location whose path ends in ".xml" is read directly. Any other location
// is treated as a blog root: sitemaps are located through robots.txt,
// falling back to /sitemap.xml, and only URLs under the location's path
// are kept. Returns an empty slice (not nil) when no sitemap exists.
func (s *SitemapService) DiscoverURLs(ctx context.Context, location string, filter *pressroom.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc, err := url.Parse(location)
	if err != nil || loc.Host == "" {
		return nil, pressroom.Errorf(pressroom.EINVALID, "invalid sitemap location %q", location)
	}

	var sitemaps []string
	var section string
	if strings.HasSuffix(strings.ToLower(loc.Path), ".xml") {
		sitemaps = []string{loc.String()}
	} else {
		section = strings.TrimSuffix(loc.Path, "/")
		root := &url.URL{Scheme: loc.Scheme, Host: loc.Host}
		if sitemaps, err = s.locateSitemaps(ctx, root); err != nil {
			return nil, err
		}
	}

	w := &sitemapWalker{svc: s, visited: make(map[string]bool), seen: make(map[string]bool)}
	for _, sm := range sitemaps {
		if err := w.walk(ctx, sm); err != nil {
			return nil, err
		}
	}

	urls := []string{}
	for _, u := range w.urls {
		if section != "" && !underSection(u, section) {
			continue
		}
		if filter.Match(u) {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// underSection reports whether rawURL's path is section or below it.
// "/blog" matches "/blog" and "/blog/post" but not "/blogroll".
func underSection(rawURL, section string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.TrimSuffix(u.Path, "/")
	return p == section || strings.HasPrefix(p, section+"/")
}

// sitemapWalker collects page URLs across nested sitemap indexes.
type sitemapWalker struct {
	svc     *SitemapService
	visited map[string]bool
	seen    map[string]bool
	urls    []string
}

func (w *sitemapWalker) walk(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] {
		return nil
	}
	w.visited[sitemapURL] = true

	body, err := w.svc.get(ctx, sitemapURL)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty sitemap %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		for _, child := range locs(root, "sitemap") {
			if err := w.walk(ctx, child); err != nil {
				return err
			}
		}
	case "urlset":
		for _, u := range locs(root, "url") {
			if !w.seen[u] {
				w.seen[u] = true
				w.urls = append(w.urls, u)
			}
		}
	default:
		return fmt.Errorf("sitemap %s: unexpected root element <%s>", sitemapURL, root.Tag)
	}
	return nil
}

// locs returns the non-empty <loc> values of root's children named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// locateSitemaps reads Sitemap: directives from robots.txt and falls back
// to /sitemap.xml when there are none.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.get(ctx, robots); err == nil {
		sitemaps, err := parseRobots(body)
		body.Close()
		if err != nil {
			return nil, err
		}
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

func parseRobots(r io.Reader) ([]string, error) {
	const directive = "sitemap:"

	var sitemaps []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		if v := strings.TrimSpace(line[len(directive):]); v != "" {
			sitemaps = append(sitemaps, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
