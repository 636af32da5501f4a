package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/dockharden"
)

// Pipeline defaults.
const (
	DefaultTopK      = 4
	DefaultBatchSize = 32
)

// Ensure Pipeline implements dockharden.Asker at compile time.
var _ dockharden.Asker = (*Pipeline)(nil)

// Pipeline indexes documentation and answers questions against it.
type Pipeline struct {
	Loader    dockharden.DocumentLoader
	Splitter  dockharden.Splitter
	Index     dockharden.ChunkIndex
	Embedder  dockharden.Embedder
	Generator dockharden.Generator

	// TokenCounter, when set, logs the prompt size before generation.
	TokenCounter dockharden.TokenCounter

	// System is the system instruction for every generation.
	System string

	TopK      int
	BatchSize int

	Logger *slog.Logger
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// Load replaces the indexed documentation with the pages at urls and
// returns the number of chunks indexed.
func (p *Pipeline) Load(ctx context.Context, urls []string) (int, error) {
	if err := p.Index.Reset(ctx); err != nil {
		return 0, err
	}

	docs, err := p.Loader.Load(ctx, urls)
	if err != nil {
		return 0, err
	}

	var chunks []*dockharden.Chunk
	for _, doc := range docs {
		texts, err := p.Splitter.Split(doc.Content)
		if err != nil {
			return 0, fmt.Errorf("splitting %s: %w", doc.SourceURL, err)
		}
		for i, text := range texts {
			chunks = append(chunks, &dockharden.Chunk{
				SourceURL: doc.SourceURL,
				Content:   text,
				Position:  i,
			})
		}
	}
	if len(chunks) == 0 {
		return 0, dockharden.Errorf(dockharden.ENODOCS, "No documentation content was loaded or parsed for the detected base images.")
	}

	if err := p.embedChunks(ctx, chunks); err != nil {
		return 0, err
	}
	if err := p.Index.AddChunks(ctx, chunks); err != nil {
		return 0, err
	}

	n, err := p.Index.Count(ctx)
	if err != nil {
		return 0, err
	}
	p.logger().Info("indexed documentation", "pages", len(docs), "chunks", n)
	return n, nil
}

// embedChunks fills in chunk embeddings in batches.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []*dockharden.Chunk) error {
	size := p.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	for start := 0; start < len(chunks); start += size {
		batch := chunks[start:min(start+size, len(chunks))]
		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := p.Embedder.Embed(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(batch) {
			return dockharden.Errorf(dockharden.EINTERNAL, "embedder returned %d vectors for %d texts", len(vectors), len(batch))
		}
		for i, c := range batch {
			c.Embedding = vectors[i]
		}
	}
	return nil
}

// Ask retrieves the chunks closest to question and asks the generator to
// answer from them.
func (p *Pipeline) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", dockharden.Errorf(dockharden.EINVALID, "question required")
	}

	vectors, err := p.Embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", err
	}
	if len(vectors) != 1 {
		return "", dockharden.Errorf(dockharden.EINTERNAL, "embedder returned %d vectors for 1 text", len(vectors))
	}

	topK := p.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	results, err := p.Index.Search(ctx, vectors[0], dockharden.SearchOptions{Limit: topK})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", dockharden.Errorf(dockharden.ENODOCS, "no documentation loaded")
	}

	prompt := BuildPrompt(dockharden.FormatContext(results), question)
	if p.TokenCounter != nil {
		if tokens, err := p.TokenCounter.CountTokens(ctx, prompt); err == nil {
			p.logger().Debug("prompt size", "tokens", tokens, "chunks", len(results))
		}
	}

	return p.Generator.Generate(ctx, p.System, prompt)
}
