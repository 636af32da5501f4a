package dockharden

import "context"

// Document is the text content of one loaded documentation page.
type Document struct {
	SourceURL string `json:"sourceUrl"`
	Title     string `json:"title"`
	Content   string `json:"content"` // Markdown
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	return nil
}

// DocumentLoader fetches documentation pages and returns their text.
// Pages that fail to load are skipped; an empty result is not an error.
type DocumentLoader interface {
	Load(ctx context.Context, urls []string) ([]*Document, error)
}
