package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dockharden"
)

var _ dockharden.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService reports each sitemap read: the number of URLs at
// info level, or the failure at warn level.
type LoggingSitemapService struct {
	next   dockharden.SitemapService
	logger *slog.Logger
}

func NewLoggingSitemapService(next dockharden.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	begin := time.Now()
	urls, err := s.next.DiscoverURLs(ctx, sitemapURL)
	elapsed := time.Since(begin).Round(time.Millisecond)

	if err != nil {
		s.logger.Warn("sitemap unreadable", "sitemap", sitemapURL, "elapsed", elapsed, "err", err)
		return nil, err
	}
	s.logger.Info("sitemap read", "sitemap", sitemapURL, "urls", len(urls), "elapsed", elapsed)
	return urls, nil
}
