// Package crawl provides recursive discovery of documentation pages.
// It walks a documentation site from a seed URL, following in-scope links,
// and collects the URLs of pages that are documentation sections.
package crawl

import (
	"context"
	"log/slog"
	"sort"

	"github.com/fwojciec/dockharden"
)

// Crawler discovers documentation URLs by following links from a seed page.
// A Crawler may be reused, but each call to Crawl owns its own frontier and
// visited set and must not run concurrently with another call.
type Crawler struct {
	Fetcher dockharden.Fetcher
	Links   dockharden.LinkExtractor

	// PathPrefix restricts the crawl to paths under this prefix.
	// Defaults to dockharden.DefaultPathPrefix.
	PathPrefix string

	// MaxPages caps the number of pages fetched. Zero means no limit.
	MaxPages int

	Logger *slog.Logger
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Visited int
	Pending int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressVisiting ProgressType = iota
	ProgressDocument
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Result holds the outcome of a crawl.
type Result struct {
	// DocURLs are the documentation pages found, sorted.
	DocURLs []string
	Visited int
	Failed  int
}

// Crawl walks the site from seedURL until the frontier is empty and returns
// the documentation URLs found, sorted lexicographically. The crawl is
// scoped to the seed's host and the configured path prefix. Extra seeds are
// added to the frontier when they are in scope.
//
// A page that fails to fetch, or responds with a status other than 200, is
// logged and skipped. Cancelling ctx stops the crawl between pages.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, progress ProgressFunc, extraSeeds ...string) (*Result, error) {
	scope, err := dockharden.NewScope(seedURL, c.PathPrefix)
	if err != nil {
		return nil, err
	}
	logger := c.logger()

	frontier := NewFrontier()
	for _, u := range extraSeeds {
		if scope.Contains(u) {
			frontier.Add(u)
		}
	}
	frontier.Add(seedURL)

	visited := VisitedSet{}
	docs := make(map[string]struct{})
	var result Result

	for {
		url, ok := frontier.Take()
		if !ok {
			break
		}
		if !visited.Mark(url) {
			continue
		}
		if c.MaxPages > 0 && result.Visited >= c.MaxPages {
			logger.Warn("page limit reached", "limit", c.MaxPages, "pending", frontier.Len())
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.Visited++
		logger.Info("crawling", "url", url)
		emit(progress, ProgressEvent{Type: ProgressVisiting, URL: url, Visited: result.Visited, Pending: frontier.Len()})

		outcome := dockharden.Fetch(ctx, c.Fetcher, url)
		switch {
		case outcome.Err != nil:
			result.Failed++
			logger.Warn("failed to crawl", "url", url, "err", outcome.Err)
			emit(progress, ProgressEvent{Type: ProgressSkipped, URL: url, Visited: result.Visited, Error: outcome.Err})
			continue
		case !outcome.OK():
			logger.Debug("no content", "url", url, "status", outcome.StatusCode)
			emit(progress, ProgressEvent{Type: ProgressSkipped, URL: url, Visited: result.Visited})
			continue
		}

		if dockharden.IsDocumentationURL(url) {
			docs[url] = struct{}{}
			emit(progress, ProgressEvent{Type: ProgressDocument, URL: url, Visited: result.Visited})
		}

		links, err := c.Links.ExtractLinks(outcome.Body, url)
		if err != nil {
			logger.Warn("failed to extract links", "url", url, "err", err)
			continue
		}
		for _, link := range links {
			if scope.Contains(link) && !visited.Has(link) {
				frontier.Add(link)
			}
		}
	}

	result.DocURLs = make([]string, 0, len(docs))
	for u := range docs {
		result.DocURLs = append(result.DocURLs, u)
	}
	sort.Strings(result.DocURLs)

	emit(progress, ProgressEvent{Type: ProgressFinished, Visited: result.Visited})
	return &result, nil
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
