package dockharden

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. The input should be
	// clean HTML (e.g., from an Extractor); relative links are made absolute
	// against pageURL when it is not empty.
	Convert(html string, pageURL string) (string, error)
}
