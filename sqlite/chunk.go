package sqlite

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/dockharden"
	"github.com/google/uuid"
)

// DefaultSearchLimit is the number of results returned when no limit is given.
const DefaultSearchLimit = 4

// Compile-time interface verification.
var _ dockharden.ChunkIndex = (*Index)(nil)

// Index implements dockharden.ChunkIndex using SQLite. Embeddings are stored
// as blobs and ranked in process by cosine similarity.
type Index struct {
	db *DB
}

// NewIndex creates a new Index.
func NewIndex(db *DB) *Index {
	return &Index{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// AddChunks stores chunks in a single transaction. Each stored chunk gets a
// new ID and its content hash; chunks whose content is already indexed are
// skipped and keep an empty ID.
func (s *Index) AddChunks(ctx context.Context, chunks []*dockharden.Chunk) error {
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range chunks {
		hash := hashContent(c.Content)
		id := uuid.New().String()
		res, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, source_url, content, content_hash, position, embedding, indexed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(content_hash) DO NOTHING
		`, id, c.SourceURL, c.Content, hash, c.Position, encodeEmbedding(c.Embedding), now)
		if err != nil {
			return fmt.Errorf("insert chunk: %w", err)
		}
		c.ContentHash = hash
		if n, _ := res.RowsAffected(); n > 0 {
			c.ID = id
		}
	}

	return tx.Commit()
}

// Search ranks every stored chunk by cosine similarity to embedding and
// returns the best matches, highest score first. Ties keep insertion order.
// A non-zero MinScore drops results scoring below it.
func (s *Index) Search(ctx context.Context, embedding []float32, opts dockharden.SearchOptions) ([]dockharden.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, dockharden.Errorf(dockharden.EINVALID, "query embedding required")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_url, content, content_hash, position, embedding
		FROM chunks
		ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []dockharden.SearchResult
	for rows.Next() {
		var c dockharden.Chunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.SourceURL, &c.Content, &c.ContentHash, &c.Position, &blob); err != nil {
			return nil, err
		}
		c.Embedding = decodeEmbedding(blob)

		score := cosineSimilarity(embedding, c.Embedding)
		if opts.MinScore != 0 && score < opts.MinScore {
			continue
		}
		results = append(results, dockharden.SearchResult{Chunk: &c, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Count returns the number of stored chunks.
func (s *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Reset removes all stored chunks.
func (s *Index) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks`)
	return err
}

// encodeEmbedding packs a vector as little-endian float32s.
func encodeEmbedding(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}

func decodeEmbedding(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v
}

// cosineSimilarity returns 0 for vectors of different length or zero norm.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
