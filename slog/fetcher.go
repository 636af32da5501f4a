// Package slog provides logging decorators for dockharden services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dockharden"
)

// Ensure LoggingFetcher implements dockharden.Fetcher.
var _ dockharden.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   dockharden.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next dockharden.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *dockharden.FetchResult, err error) {
	defer func(begin time.Time) {
		var status, size int
		if result != nil {
			status, size = result.StatusCode, len(result.Body)
		}
		f.logger.Debug("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
