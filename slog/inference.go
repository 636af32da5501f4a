package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dockharden"
)

// Ensure LoggingEmbedder implements dockharden.Embedder.
var _ dockharden.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging.
type LoggingEmbedder struct {
	next   dockharden.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next dockharden.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs batch size and latency.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("embed",
			"count", len(texts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}

// Ensure LoggingGenerator implements dockharden.Generator.
var _ dockharden.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   dockharden.Generator
	model  string
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator. The model name is
// only used as a log attribute.
func NewLoggingGenerator(next dockharden.Generator, model string, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, model: model, logger: logger}
}

// Generate delegates to the wrapped generator and logs the call.
func (g *LoggingGenerator) Generate(ctx context.Context, system, prompt string) (answer string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"model", g.model,
			"prompt_chars", len(prompt),
			"answer_chars", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, system, prompt)
}
