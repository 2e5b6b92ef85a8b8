package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/pressroom"
)

var _ pressroom.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Successful fetches are
// logged at debug level so an import of hundreds of articles stays quiet
// unless something goes wrong.
type LoggingFetcher struct {
	next   pressroom.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pressroom.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the article request.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []slog.Attr{
			slog.String("host", hostOf(rawURL)),
			slog.String("url", rawURL),
			slog.Int("bytes", len(html)),
			slog.Duration("duration", time.Since(begin)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("code", pressroom.ErrorCode(err)), slog.Any("err", err))
			f.logger.LogAttrs(ctx, slog.LevelWarn, "fetch failed", attrs...)
			return
		}
		f.logger.LogAttrs(ctx, slog.LevelDebug, "fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
