// Package readability extracts the readable body of documentation pages
// using go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/dockharden"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements dockharden.Extractor at compile time.
var _ dockharden.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. When readability
// finds no article body the page's plain text is returned as a paragraph.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*dockharden.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, dockharden.Errorf(dockharden.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if pageURL != "" {
		var err error
		if u, err = url.Parse(pageURL); err != nil {
			return nil, dockharden.Errorf(dockharden.EINVALID, "invalid page URL: %v", err)
		}
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	content := article.Content
	if strings.TrimSpace(content) == "" && strings.TrimSpace(article.TextContent) != "" {
		content = "<p>" + article.TextContent + "</p>"
	}

	return &dockharden.ExtractResult{
		Title:       article.Title,
		ContentHTML: content,
	}, nil
}
