// Package rag loads image documentation, indexes it for similarity search
// and answers conversion requests against it.
package rag

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/dockharden"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages loaded at once.
const DefaultConcurrency = 4

// Ensure Loader implements dockharden.DocumentLoader at compile time.
var _ dockharden.DocumentLoader = (*Loader)(nil)

// Loader fetches documentation pages and turns them into Markdown documents.
type Loader struct {
	Fetcher   dockharden.Fetcher
	Extractor dockharden.Extractor
	Converter dockharden.Converter

	// Concurrency bounds parallel page loads. Defaults to DefaultConcurrency.
	Concurrency int

	Logger *slog.Logger
}

// Load fetches every URL and returns one document per page that produced
// content, in input order. Pages that fail to fetch, answer with a non-200
// status, or have no extractable text are skipped with a warning. Only
// cancellation of ctx is returned as an error.
func (l *Loader) Load(ctx context.Context, urls []string) ([]*dockharden.Document, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	docs := make([]*dockharden.Document, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, url := range urls {
		g.Go(func() error {
			doc, err := l.loadPage(ctx, url)
			if err != nil {
				logger.Warn("failed to load documentation", "url", url, "err", err)
				return nil
			}
			if doc == nil {
				logger.Warn("no documentation content", "url", url)
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loaded := make([]*dockharden.Document, 0, len(docs))
	for _, doc := range docs {
		if doc != nil {
			loaded = append(loaded, doc)
		}
	}
	return loaded, nil
}

// loadPage returns a nil document without error when the page has no content.
func (l *Loader) loadPage(ctx context.Context, url string) (*dockharden.Document, error) {
	outcome := dockharden.Fetch(ctx, l.Fetcher, url)
	if outcome.Err != nil {
		return nil, outcome.Err
	}
	if outcome.Empty() {
		return nil, nil
	}

	extracted, err := l.Extractor.Extract(outcome.Body, url)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(extracted.ContentHTML) == "" {
		return nil, nil
	}

	markdown, err := l.Converter.Convert(extracted.ContentHTML, url)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, nil
	}

	return &dockharden.Document{
		SourceURL: url,
		Title:     extracted.Title,
		Content:   markdown,
	}, nil
}
