package dockharden

import (
	"net/url"
	"strings"
)

// DefaultDocsURL is the documentation site for hardened images.
const DefaultDocsURL = "https://images.chainguard.dev"

// Section is one of the fixed documentation page types published per image.
type Section string

// Documentation sections, in the order they are requested.
const (
	SectionOverview Section = "overview"
	SectionUsage    Section = "usage"
	SectionVersions Section = "versions"
	SectionTags     Section = "tags"
	SectionVuln     Section = "vuln"
)

// Sections returns all documentation sections in request order.
func Sections() []Section {
	return []Section{SectionOverview, SectionUsage, SectionVersions, SectionTags, SectionVuln}
}

// IsDocumentationPath reports whether the final segment of path, after
// stripping one trailing slash, is exactly a documentation section.
func IsDocumentationPath(path string) bool {
	path = strings.TrimSuffix(path, "/")
	last := path[strings.LastIndex(path, "/")+1:]
	for _, s := range Sections() {
		if last == string(s) {
			return true
		}
	}
	return false
}

// IsDocumentationURL applies IsDocumentationPath to the path of rawURL.
func IsDocumentationURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return IsDocumentationPath(u.Path)
}

// DocURLs builds the documentation URL bundle for each image: one URL per
// section, whether or not the page exists. The order follows images, then
// Sections.
func DocURLs(baseURL string, images []string) []string {
	base := strings.TrimSuffix(baseURL, "/")
	urls := make([]string, 0, len(images)*len(Sections()))
	for _, name := range images {
		for _, s := range Sections() {
			urls = append(urls, base+DefaultPathPrefix+name+"/"+string(s))
		}
	}
	return urls
}
