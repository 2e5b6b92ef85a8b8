package mock

import (
	"context"

	"github.com/fwojciec/pressroom"
)

var _ pressroom.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of pressroom.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, sitemapURL string, filter *pressroom.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *pressroom.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, sitemapURL, filter)
}
