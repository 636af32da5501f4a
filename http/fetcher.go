// Package http provides an HTTP-based implementation of dockharden.Fetcher
// for fetching pages from static sites that don't require JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/dockharden"
)

// Ensure Fetcher implements dockharden.Fetcher at compile time.
var _ dockharden.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// By default no timeout is applied beyond the transport's own.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient sets the underlying HTTP client. The timeout option, if given,
// is applied to a copy of it.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}

	client := http.Client{}
	if f.client != nil {
		client = *f.client
	}
	if f.timeout > 0 {
		client.Timeout = f.timeout
	}
	f.client = &client

	return f
}

// Fetch performs a single GET request. Responses with any status code are
// returned as a FetchResult; transport failures are returned as a
// *dockharden.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*dockharden.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &dockharden.FetchError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &dockharden.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	result := &dockharden.FetchResult{URL: url, StatusCode: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		// The body of an error page is not content.
		_, _ = io.Copy(io.Discard, resp.Body)
		return result, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &dockharden.FetchError{URL: url, Err: err}
	}
	result.Body = string(body)

	return result, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
