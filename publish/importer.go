// Package publish coordinates importing articles from the web and building
// the published site from stored articles.
package publish

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/pressroom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when a worker count is not set.
const DefaultConcurrency = 10

// Importer fetches article pages and stores them as articles.
type Importer struct {
	Sitemaps  pressroom.SitemapService
	Links     pressroom.LinkExtractor
	Fetcher   pressroom.Fetcher
	Extractor pressroom.Extractor // nil stores the page as fetched
	Articles  pressroom.ArticleService
	Limiter   pressroom.HostLimiter // optional

	Concurrency int
	RetryDelays []time.Duration
}

// ImportResult holds the outcome of an import.
type ImportResult struct {
	Created   int
	Updated   int
	Unchanged int
	Failed    int
	Bytes     int
}

// ProgressEvent reports progress during an import.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event ProgressEvent)

// fetched is the outcome of fetching a single URL.
type fetched struct {
	position int
	url      string
	title    string
	content  string
	err      error
}

// ImportSitemap discovers URLs through the sitemap at location and imports them.
func (im *Importer) ImportSitemap(ctx context.Context, location string, filter *pressroom.URLFilter, progress ProgressFunc) (*ImportResult, error) {
	urls, err := im.Sitemaps.DiscoverURLs(ctx, location, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}
	return im.Import(ctx, urls, progress)
}

// ImportIndex imports the articles linked from a blog index or archive
// page. It is the fallback for blogs that publish no sitemap.
func (im *Importer) ImportIndex(ctx context.Context, indexURL string, filter *pressroom.URLFilter, progress ProgressFunc) (*ImportResult, error) {
	delays := im.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	page, err := fetchWithRetry(ctx, indexURL, im.limitedFetch, delays)
	if err != nil {
		return nil, fmt.Errorf("index page: %w", err)
	}

	links, err := im.Links.ExtractLinks(page, indexURL)
	if err != nil {
		return nil, fmt.Errorf("index page: %w", err)
	}

	urls := make([]string, 0, len(links))
	for _, u := range links {
		if filter.Match(u) {
			urls = append(urls, u)
		}
	}
	return im.Import(ctx, urls, progress)
}

// Import fetches each URL and creates or updates the matching article.
// Failures of individual URLs are counted in the result and reported
// through progress; only context cancellation aborts the import.
func (im *Importer) Import(ctx context.Context, urls []string, progress ProgressFunc) (*ImportResult, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	concurrency := im.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	delays := im.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan fetched, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- im.fetch(gctx, i, u, delays)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Stored in input order so that slug collisions resolve the same way
	// on every run.
	results := make([]fetched, total)
	var completed int
	for r := range resultCh {
		completed++
		results[r.position] = r

		ev := ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: r.url}
		if r.err != nil {
			ev.Type = ProgressFailed
			ev.Error = r.err
		}
		progress(ev)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var res ImportResult
	for _, r := range results {
		if r.err != nil {
			res.Failed++
			continue
		}
		if err := im.store(ctx, r, &res); err != nil {
			res.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, URL: r.url, Error: err})
			continue
		}
		res.Bytes += len(r.content)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return &res, nil
}

func (im *Importer) fetch(ctx context.Context, position int, rawURL string, delays []time.Duration) fetched {
	r := fetched{position: position, url: rawURL}

	page, err := fetchWithRetry(ctx, rawURL, im.limitedFetch, delays)
	if err != nil {
		r.err = err
		return r
	}

	if im.Extractor == nil {
		r.content = page
		return r
	}

	extracted, err := im.Extractor.Extract(page)
	if err != nil {
		r.err = err
		return r
	}
	r.title = extracted.Title
	r.content = extracted.ContentHTML
	return r
}

// limitedFetch waits for the host's rate limit, then fetches target.
func (im *Importer) limitedFetch(ctx context.Context, target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return "", pressroom.Errorf(pressroom.EINVALID, "invalid URL %q", target)
	}
	if im.Limiter != nil {
		if err := im.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return im.Fetcher.Fetch(ctx, target)
}

// store creates the article for r, or updates it when the slug already
// exists with different content.
func (im *Importer) store(ctx context.Context, r fetched, res *ImportResult) error {
	slug, err := SlugFromURL(r.url)
	if err != nil {
		return err
	}

	existing, err := im.Articles.FindArticles(ctx, pressroom.ArticleFilter{Slug: &slug, Limit: 1})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		article := &pressroom.Article{
			Slug:      slug,
			Title:     r.title,
			SourceURL: r.url,
			Content:   r.content,
		}
		if err := im.Articles.CreateArticle(ctx, article); err != nil {
			return err
		}
		res.Created++
		return nil
	}

	article := existing[0]
	if article.Content == r.content && article.Title == r.title {
		res.Unchanged++
		return nil
	}
	if _, err := im.Articles.UpdateArticle(ctx, article.ID, pressroom.ArticleUpdate{
		Title:   &r.title,
		Content: &r.content,
	}); err != nil {
		return err
	}
	res.Updated++
	return nil
}
