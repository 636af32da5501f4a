package dockharden

import "strings"

// FormatContext formats retrieved chunks as LLM context.
// Each chunk is headed by its source URL; chunks are separated by blank lines.
func FormatContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Chunk == nil {
			continue
		}
		parts = append(parts, "## Source: "+r.Chunk.SourceURL+"\n"+r.Chunk.Content)
	}

	return strings.Join(parts, "\n\n")
}
