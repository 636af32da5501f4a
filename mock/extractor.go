package mock

import "github.com/fwojciec/dockharden"

var _ dockharden.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of dockharden.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*dockharden.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*dockharden.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
