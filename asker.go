package dockharden

import "context"

// Embedder turns text into vectors for similarity search.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a completion from a system instruction and a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Asker answers natural language questions over indexed documentation.
type Asker interface {
	// Load indexes the documentation at urls and returns the number of chunks.
	// Returns ENODOCS if nothing could be loaded.
	Load(ctx context.Context, urls []string) (int, error)

	// Ask answers a question using the loaded documentation.
	Ask(ctx context.Context, question string) (string, error)
}
