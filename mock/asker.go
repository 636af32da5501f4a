package mock

import (
	"context"

	"github.com/fwojciec/dockharden"
)

var _ dockharden.Asker = (*Asker)(nil)

// Asker is a mock implementation of dockharden.Asker.
type Asker struct {
	LoadFn func(ctx context.Context, urls []string) (int, error)
	AskFn  func(ctx context.Context, question string) (string, error)
}

func (a *Asker) Load(ctx context.Context, urls []string) (int, error) {
	return a.LoadFn(ctx, urls)
}

func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	return a.AskFn(ctx, question)
}

var _ dockharden.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of dockharden.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

var _ dockharden.Generator = (*Generator)(nil)

// Generator is a mock implementation of dockharden.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, system, prompt string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, system, prompt string) (string, error) {
	return g.GenerateFn(ctx, system, prompt)
}
