package dockharden

import (
	"context"
)

// Chunk represents a section of a document optimized for embedding and retrieval.
type Chunk struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	if len(c.Embedding) == 0 {
		return Errorf(EINVALID, "chunk embedding required")
	}
	return nil
}

// Splitter breaks document text into overlapping chunks.
type Splitter interface {
	Split(text string) ([]string, error)
}

// ChunkIndex stores embedded chunks and answers similarity queries.
type ChunkIndex interface {
	// AddChunks stores chunks. Chunks whose content is already indexed are skipped.
	AddChunks(ctx context.Context, chunks []*Chunk) error

	// Search returns the chunks most similar to the query embedding,
	// ordered by descending score.
	Search(ctx context.Context, embedding []float32, opts SearchOptions) ([]SearchResult, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Reset removes all stored chunks.
	Reset(ctx context.Context) error
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Maximum number of results to return
	Limit int `json:"limit,omitempty"`

	// Minimum similarity score (-1 to 1)
	MinScore float32 `json:"minScore,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}
