package rag_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/dockharden"
	"github.com/fwojciec/dockharden/mock"
	"github.com/fwojciec/dockharden/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthrough returns an extractor and converter that copy the body through.
func passthrough() (*mock.Extractor, *mock.Converter) {
	ext := &mock.Extractor{
		ExtractFn: func(html, pageURL string) (*dockharden.ExtractResult, error) {
			return &dockharden.ExtractResult{Title: "title of " + pageURL, ContentHTML: html}, nil
		},
	}
	conv := &mock.Converter{
		ConvertFn: func(html, pageURL string) (string, error) {
			return "md:" + html, nil
		},
	}
	return ext, conv
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("returns documents in input order", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*dockharden.FetchResult, error) {
				// Earlier URLs finish last.
				if strings.HasSuffix(url, "/overview") {
					time.Sleep(20 * time.Millisecond)
				}
				return &dockharden.FetchResult{URL: url, StatusCode: 200, Body: "body " + url}, nil
			},
		}
		ext, conv := passthrough()
		loader := &rag.Loader{Fetcher: fetcher, Extractor: ext, Converter: conv}

		urls := []string{"https://x/overview", "https://x/usage", "https://x/tags"}
		docs, err := loader.Load(context.Background(), urls)

		require.NoError(t, err)
		require.Len(t, docs, 3)
		for i, doc := range docs {
			assert.Equal(t, urls[i], doc.SourceURL)
			assert.Equal(t, "title of "+urls[i], doc.Title)
			assert.Equal(t, "md:body "+urls[i], doc.Content)
		}
	})

	t.Run("skips failed and empty pages with warnings", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*dockharden.FetchResult, error) {
				switch url {
				case "https://x/broken":
					return nil, &dockharden.FetchError{URL: url, Err: errors.New("connection refused")}
				case "https://x/missing":
					return &dockharden.FetchResult{URL: url, StatusCode: 404}, nil
				}
				return &dockharden.FetchResult{URL: url, StatusCode: 200, Body: "content"}, nil
			},
		}
		ext, conv := passthrough()
		var buf bytes.Buffer
		loader := &rag.Loader{
			Fetcher:   fetcher,
			Extractor: ext,
			Converter: conv,
			Logger:    slog.New(slog.NewTextHandler(&buf, nil)),
		}

		docs, err := loader.Load(context.Background(), []string{"https://x/broken", "https://x/ok", "https://x/missing"})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "https://x/ok", docs[0].SourceURL)
		assert.Contains(t, buf.String(), "failed to load documentation")
		assert.Contains(t, buf.String(), "connection refused")
		assert.Contains(t, buf.String(), "no documentation content")
	})

	t.Run("skips pages whose extraction fails or is empty", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*dockharden.FetchResult, error) {
				return &dockharden.FetchResult{URL: url, StatusCode: 200, Body: url}, nil
			},
		}
		ext := &mock.Extractor{
			ExtractFn: func(html, pageURL string) (*dockharden.ExtractResult, error) {
				switch pageURL {
				case "https://x/bad":
					return nil, errors.New("parse error")
				case "https://x/blank":
					return &dockharden.ExtractResult{ContentHTML: "  "}, nil
				}
				return &dockharden.ExtractResult{ContentHTML: "<p>ok</p>"}, nil
			},
		}
		_, conv := passthrough()
		loader := &rag.Loader{Fetcher: fetcher, Extractor: ext, Converter: conv}

		docs, err := loader.Load(context.Background(), []string{"https://x/bad", "https://x/blank", "https://x/good"})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "https://x/good", docs[0].SourceURL)
	})

	t.Run("returns empty slice when nothing loads", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*dockharden.FetchResult, error) {
				return &dockharden.FetchResult{URL: url, StatusCode: 500}, nil
			},
		}
		ext, conv := passthrough()
		loader := &rag.Loader{Fetcher: fetcher, Extractor: ext, Converter: conv}

		docs, err := loader.Load(context.Background(), []string{"https://x/a"})

		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("limits concurrent fetches", func(t *testing.T) {
		t.Parallel()

		var inflight, peak atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*dockharden.FetchResult, error) {
				n := inflight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				inflight.Add(-1)
				return &dockharden.FetchResult{URL: url, StatusCode: 200, Body: "x"}, nil
			},
		}
		ext, conv := passthrough()
		loader := &rag.Loader{Fetcher: fetcher, Extractor: ext, Converter: conv, Concurrency: 2}

		urls := make([]string, 10)
		for i := range urls {
			urls[i] = "https://x/" + string(rune('a'+i))
		}
		docs, err := loader.Load(context.Background(), urls)

		require.NoError(t, err)
		assert.Len(t, docs, 10)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*dockharden.FetchResult, error) {
				return nil, &dockharden.FetchError{URL: url, Err: ctx.Err()}
			},
		}
		ext, conv := passthrough()
		loader := &rag.Loader{Fetcher: fetcher, Extractor: ext, Converter: conv}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := loader.Load(ctx, []string{"https://x/a"})

		require.ErrorIs(t, err, context.Canceled)
	})
}
