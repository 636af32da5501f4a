// Package rod fetches pages through a headless Chrome browser so that
// client-rendered navigation is present in the returned HTML.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/dockharden"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements dockharden.Fetcher at compile time.
var _ dockharden.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browsers *pool
	timeout  time.Duration
	closed   atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	timeout      time.Duration
	recycleAfter int64
}

// WithFetchTimeout sets the per-page load timeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithRecycleAfter sets how many pages the browser serves before it is
// replaced with a fresh instance.
func WithRecycleAfter(n int64) FetcherOption {
	return func(c *fetcherConfig) {
		c.recycleAfter = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	cfg := fetcherConfig{timeout: DefaultFetchTimeout, recycleAfter: DefaultRecycleAfter}
	for _, opt := range opts {
		opt(&cfg)
	}

	browsers, err := newPool(cfg.recycleAfter, launchInstance)
	if err != nil {
		return nil, err
	}

	return &Fetcher{browsers: browsers, timeout: cfg.timeout}, nil
}

// Fetch navigates to the URL and returns the rendered HTML together with
// the status of the main document response.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*dockharden.FetchResult, error) {
	if f.closed.Load() {
		return nil, dockharden.Errorf(dockharden.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	browser, release, err := f.browsers.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, &dockharden.FetchError{URL: url, Err: err}
	}
	defer page.Close()

	page = page.Context(ctx)

	status := 0
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return nil, &dockharden.FetchError{URL: url, Err: err}
	}
	waitResponse()
	if err := ctx.Err(); err != nil {
		return nil, &dockharden.FetchError{URL: url, Err: err}
	}

	result := &dockharden.FetchResult{URL: url, StatusCode: status}
	if !result.OK() {
		return result, nil
	}

	if err := page.WaitLoad(); err != nil {
		return nil, &dockharden.FetchError{URL: url, Err: err}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, &dockharden.FetchError{URL: url, Err: err}
	}
	result.Body = html

	return result, nil
}

// LauncherPID returns the process ID of the current browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browsers.pid()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browsers.close()
}
