package slog

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pressroom"
)

var _ pressroom.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   pressroom.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next pressroom.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs how the location
// was interpreted. Failures and empty results are logged as warnings since
// they leave nothing to import.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, location string, filter *pressroom.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		mode, section := discoveryMode(location)
		attrs := []slog.Attr{
			slog.String("location", location),
			slog.String("mode", mode),
		}
		if section != "" {
			attrs = append(attrs, slog.String("section", section))
		}
		if filter != nil {
			attrs = append(attrs,
				slog.Int("include", len(filter.Include)),
				slog.Int("exclude", len(filter.Exclude)),
			)
		}
		attrs = append(attrs,
			slog.Int("urls", len(urls)),
			slog.Duration("duration", time.Since(begin)),
		)

		level := slog.LevelInfo
		switch {
		case err != nil:
			level = slog.LevelWarn
			attrs = append(attrs, slog.String("code", pressroom.ErrorCode(err)), slog.Any("err", err))
		case len(urls) == 0:
			level = slog.LevelWarn
		}
		s.logger.LogAttrs(ctx, level, "discover", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, location, filter)
}

// discoveryMode reports whether location names a sitemap file or a blog
// root, and for a blog root the path section URLs are limited to.
func discoveryMode(location string) (mode, section string) {
	u, err := url.Parse(location)
	if err != nil {
		return "unknown", ""
	}
	if strings.HasSuffix(strings.ToLower(u.Path), ".xml") {
		return "sitemap", ""
	}
	section = strings.TrimSuffix(u.Path, "/")
	if section == "" {
		section = "/"
	}
	return "blog", section
}
