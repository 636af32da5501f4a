package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/dockharden"
)

// MaxSitemaps bounds the number of sitemap documents read by one
// DiscoverURLs call, counting nested sitemap indexes.
const MaxSitemaps = 50

// Ensure SitemapService implements dockharden.SitemapService.
var _ dockharden.SitemapService = (*SitemapService)(nil)

// SitemapService lists page URLs from a site's sitemaps.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a SitemapService. A nil client means
// http.DefaultClient.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs reads the sitemap at sitemapURL, following sitemap indexes
// breadth first, and returns each listed page URL once in the order first
// seen. The result is empty, not nil, when nothing is listed. Gzipped
// sitemaps are accepted.
func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	pending := []string{sitemapURL}
	read := make(map[string]bool)
	listed := make(map[string]bool)
	urls := []string{}

	for len(pending) > 0 && len(read) < MaxSitemaps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next := pending[0]
		pending = pending[1:]
		if read[next] {
			continue
		}
		read[next] = true

		root, err := s.readSitemap(ctx, next)
		if err != nil {
			return nil, err
		}

		switch root.Tag {
		case "sitemapindex":
			pending = append(pending, childLocs(root, "sitemap")...)
		case "urlset":
			for _, u := range childLocs(root, "url") {
				if !listed[u] {
					listed[u] = true
					urls = append(urls, u)
				}
			}
		default:
			return nil, dockharden.Errorf(dockharden.EINVALID, "%s is not a sitemap (root element <%s>)", next, root.Tag)
		}
	}
	return urls, nil
}

// childLocs returns the trimmed, non-empty <loc> of each child named tag.
func childLocs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		if loc := el.SelectElement("loc"); loc != nil {
			if u := strings.TrimSpace(loc.Text()); u != "" {
				out = append(out, u)
			}
		}
	}
	return out
}

func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, dockharden.Errorf(dockharden.EINVALID, "invalid sitemap URL: %v", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, dockharden.Errorf(dockharden.ENOTFOUND, "sitemap not found: %s", sitemapURL)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, sitemapURL)
	}

	body, err := decompress(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading sitemap %s: %w", sitemapURL, err)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML: %s", sitemapURL)
	}
	return root, nil
}

// decompress unwraps gzip content identified by its magic bytes. Servers
// label .xml.gz files inconsistently, so headers are not trusted.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}
