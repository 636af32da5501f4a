package mock

import (
	"context"

	"github.com/fwojciec/dockharden"
)

var _ dockharden.ChunkIndex = (*ChunkIndex)(nil)

// ChunkIndex is a mock implementation of dockharden.ChunkIndex.
type ChunkIndex struct {
	AddChunksFn func(ctx context.Context, chunks []*dockharden.Chunk) error
	SearchFn    func(ctx context.Context, embedding []float32, opts dockharden.SearchOptions) ([]dockharden.SearchResult, error)
	CountFn     func(ctx context.Context) (int, error)
	ResetFn     func(ctx context.Context) error
}

func (i *ChunkIndex) AddChunks(ctx context.Context, chunks []*dockharden.Chunk) error {
	return i.AddChunksFn(ctx, chunks)
}

func (i *ChunkIndex) Search(ctx context.Context, embedding []float32, opts dockharden.SearchOptions) ([]dockharden.SearchResult, error) {
	return i.SearchFn(ctx, embedding, opts)
}

func (i *ChunkIndex) Count(ctx context.Context) (int, error) {
	return i.CountFn(ctx)
}

func (i *ChunkIndex) Reset(ctx context.Context) error {
	return i.ResetFn(ctx)
}

var _ dockharden.Splitter = (*Splitter)(nil)

// Splitter is a mock implementation of dockharden.Splitter.
type Splitter struct {
	SplitFn func(text string) ([]string, error)
}

func (s *Splitter) Split(text string) ([]string, error) {
	return s.SplitFn(text)
}
