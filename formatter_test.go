package dockharden_test

import (
	"testing"

	"github.com/fwojciec/dockharden"
	"github.com/stretchr/testify/assert"
)

func TestFormatContext(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for no results", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, dockharden.FormatContext(nil))
	})

	t.Run("heads each chunk with its source", func(t *testing.T) {
		t.Parallel()

		results := []dockharden.SearchResult{
			{Chunk: &dockharden.Chunk{SourceURL: "https://images.example.test/directory/image/python/overview", Content: "Minimal Python image."}},
			{Chunk: &dockharden.Chunk{SourceURL: "https://images.example.test/directory/image/python/usage", Content: "Runs as nonroot."}},
		}

		got := dockharden.FormatContext(results)

		assert.Equal(t,
			"## Source: https://images.example.test/directory/image/python/overview\nMinimal Python image.\n\n"+
				"## Source: https://images.example.test/directory/image/python/usage\nRuns as nonroot.",
			got)
	})

	t.Run("skips results without a chunk", func(t *testing.T) {
		t.Parallel()

		results := []dockharden.SearchResult{
			{},
			{Chunk: &dockharden.Chunk{SourceURL: "https://a.test/x", Content: "x"}},
		}

		assert.Equal(t, "## Source: https://a.test/x\nx", dockharden.FormatContext(results))
	})
}
