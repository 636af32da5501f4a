package crawl

import (
	"github.com/fwojciec/dockharden"
)

// Compile-time interface verification.
var _ dockharden.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier. URLs are taken last-in-first-out,
// which gives the crawl a depth-first order. Duplicates are kept; the
// crawler filters them against its visited set at take time.
//
// Frontier is not safe for concurrent use.
type Frontier struct {
	stack []string
}

// NewFrontier creates an empty Frontier seeded with the given URLs.
func NewFrontier(seeds ...string) *Frontier {
	f := &Frontier{}
	for _, u := range seeds {
		f.Add(u)
	}
	return f
}

// Add pushes a URL onto the frontier.
func (f *Frontier) Add(url string) {
	f.stack = append(f.stack, url)
}

// Take pops the most recently added URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Take() (string, bool) {
	n := len(f.stack)
	if n == 0 {
		return "", false
	}
	url := f.stack[n-1]
	f.stack[n-1] = ""
	f.stack = f.stack[:n-1]
	return url, true
}

// Len returns the number of URLs in the frontier.
func (f *Frontier) Len() int {
	return len(f.stack)
}

// VisitedSet records URLs the crawler has already processed.
// Membership is exact string equality; it only grows.
type VisitedSet map[string]struct{}

// Mark adds url to the set. It returns false if url was already present.
func (v VisitedSet) Mark(url string) bool {
	if _, ok := v[url]; ok {
		return false
	}
	v[url] = struct{}{}
	return true
}

// Has reports whether url has been visited.
func (v VisitedSet) Has(url string) bool {
	_, ok := v[url]
	return ok
}
