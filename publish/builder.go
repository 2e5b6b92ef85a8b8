package publish

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/pressroom"
	"golang.org/x/sync/errgroup"
)

// Builder renders every stored article into a page and saves it to a store.
type Builder struct {
	Articles  pressroom.ArticleService
	Processor pressroom.ContentProcessor
	Estimator pressroom.ReadingTimeEstimator
	Converter pressroom.Converter // nil skips the Markdown rendition
	Store     pressroom.PageStore

	Concurrency int
}

// BuildResult summarizes a build.
type BuildResult struct {
	Pages    int
	Headings int
	Bytes    int
}

// Build processes all articles concurrently. If any article fails the
// store is aborted and nothing is published; otherwise the store is
// committed.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	articles, err := b.Articles.FindArticles(ctx, pressroom.ArticleFilter{})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("loading articles: %w", err), b.Store.Abort())
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var headings, bytes atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, a := range articles {
		g.Go(func() error {
			page, err := b.render(a)
			if err != nil {
				return fmt.Errorf("article %s: %w", a.Slug, err)
			}
			if err := b.Store.Save(gctx, page); err != nil {
				return fmt.Errorf("saving %s: %w", a.Slug, err)
			}
			headings.Add(int64(len(page.TOC)))
			bytes.Add(int64(len(page.HTML)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Join(err, b.Store.Abort())
	}
	if err := b.Store.Commit(); err != nil {
		return nil, fmt.Errorf("committing pages: %w", err)
	}

	return &BuildResult{
		Pages:    len(articles),
		Headings: int(headings.Load()),
		Bytes:    int(bytes.Load()),
	}, nil
}

// render turns one article into a page. It touches no shared state.
func (b *Builder) render(a *pressroom.Article) (*pressroom.Page, error) {
	res := b.Processor.Process(a.Content)

	page := &pressroom.Page{
		Slug:        a.Slug,
		Title:       a.Title,
		SourceURL:   a.SourceURL,
		HTML:        res.ProcessedContent,
		ReadingTime: b.Estimator.Estimate(res.ProcessedContent),
		TOC:         res.TOCItems,
	}
	if page.Title == "" && len(page.TOC) > 0 {
		page.Title = page.TOC[0].Title
	}

	if b.Converter != nil {
		md, err := b.Converter.Convert(res.ProcessedContent)
		if err != nil {
			return nil, fmt.Errorf("converting to markdown: %w", err)
		}
		page.Markdown = md
	}

	return page, nil
}
