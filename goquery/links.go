// Package goquery extracts links from HTML pages using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dockharden"
)

// Ensure LinkExtractor implements dockharden.LinkExtractor at compile time.
var _ dockharden.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns the href of every anchor on a page.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses html and returns the href of each <a> element, in
// document order, resolved against baseURL. Anchors without an href
// attribute and hrefs that fail to parse are skipped. Duplicates are kept;
// scope filtering is the caller's job.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, dockharden.Errorf(dockharden.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, dockharden.Errorf(dockharden.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []string
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})

	return links, nil
}
