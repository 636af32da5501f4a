package dockharden

import "context"

// SitemapService lists the URLs published in a sitemap.
type SitemapService interface {
	// DiscoverURLs reads the sitemap at sitemapURL. Sitemap indexes are
	// resolved recursively and URLs are returned once, in document order.
	DiscoverURLs(ctx context.Context, sitemapURL string) ([]string, error)
}
