package mock

import (
	"context"

	"github.com/fwojciec/dockharden"
)

var _ dockharden.DocumentLoader = (*DocumentLoader)(nil)

// DocumentLoader is a mock implementation of dockharden.DocumentLoader.
type DocumentLoader struct {
	LoadFn func(ctx context.Context, urls []string) ([]*dockharden.Document, error)
}

func (l *DocumentLoader) Load(ctx context.Context, urls []string) ([]*dockharden.Document, error) {
	return l.LoadFn(ctx, urls)
}
