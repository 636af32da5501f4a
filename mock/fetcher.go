package mock

import (
	"context"

	"github.com/fwojciec/dockharden"
)

var _ dockharden.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of dockharden.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*dockharden.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*dockharden.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
