// Package trafilatura extracts the readable body of documentation pages
// using go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/dockharden"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements dockharden.Extractor at compile time.
var _ dockharden.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
//
// Image pages carry most of their useful detail (tag lists, ports,
// environment variables) in tables and code blocks, so tables are kept.
type Extractor struct {
	// IncludeLinks keeps anchors in the extracted content.
	IncludeLinks bool
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*dockharden.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, dockharden.Errorf(dockharden.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeLinks:    e.IncludeLinks,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, dockharden.Errorf(dockharden.EINVALID, "invalid page URL: %v", err)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &dockharden.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
