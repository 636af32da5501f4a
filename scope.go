package dockharden

import (
	"net/url"
	"strings"
)

// DefaultPathPrefix is the section of the documentation site that lists images.
const DefaultPathPrefix = "/directory/image/"

// Scope is the authority and path prefix a crawl is restricted to.
type Scope struct {
	Host       string
	PathPrefix string
}

// NewScope derives a scope from a seed URL: the seed's host and the given
// path prefix. An empty prefix falls back to DefaultPathPrefix.
func NewScope(seedURL, pathPrefix string) (Scope, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return Scope{}, Errorf(EINVALID, "invalid seed URL: %v", err)
	}
	if u.Host == "" {
		return Scope{}, Errorf(EINVALID, "seed URL %q has no host", seedURL)
	}
	if pathPrefix == "" {
		pathPrefix = DefaultPathPrefix
	}
	return Scope{Host: u.Host, PathPrefix: pathPrefix}, nil
}

// Contains reports whether rawURL is on the scope's host and under its
// path prefix. The host comparison is exact: subdomains are out of scope.
func (s Scope) Contains(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != s.Host {
		return false
	}
	return strings.HasPrefix(u.Path, s.PathPrefix)
}
