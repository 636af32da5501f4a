package dockharden

// LinkExtractor finds outgoing links in an HTML page.
type LinkExtractor interface {
	// ExtractLinks returns the href of every anchor in document order,
	// resolved against baseURL. Anchors without an href are skipped.
	// No de-duplication or scope filtering is performed.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
