package rag

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/dockharden"
	"github.com/tmc/langchaingo/textsplitter"
)

// Splitter defaults.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// DefaultSeparators are tried in order: paragraphs, lines, words, runes.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Ensure Splitter implements dockharden.Splitter at compile time.
var _ dockharden.Splitter = (*Splitter)(nil)

// Splitter cuts documentation into overlapping chunks with langchaingo's
// recursive character splitter. Sizes are counted in runes and separators
// are dropped from the output.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

// NewSplitter returns a Splitter with the default size, overlap and separators.
func NewSplitter() *Splitter {
	return &Splitter{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Separators:   DefaultSeparators,
	}
}

// Split breaks text into chunks. Whitespace-only chunks are dropped.
func (s *Splitter) Split(text string) ([]string, error) {
	size := s.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := s.ChunkOverlap
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	seps := s.Separators
	if len(seps) == 0 {
		seps = DefaultSeparators
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(overlap),
		textsplitter.WithSeparators(seps),
		textsplitter.WithLenFunc(utf8.RuneCountInString),
	)

	chunks, err := splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	out := chunks[:0]
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out, nil
}
