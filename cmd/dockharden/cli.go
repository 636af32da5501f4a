package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/dockharden"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Globals  *Globals
	Fetcher  dockharden.Fetcher
	Links    dockharden.LinkExtractor
	Sitemaps dockharden.SitemapService
	Asker    dockharden.Asker
}

// Globals are flags shared by every command.
type Globals struct {
	DocsURL string `name:"docs-url" env:"DOCKHARDEN_DOCS_URL" default:"https://images.chainguard.dev" help:"Image documentation site"`
	Render  bool   `help:"Render pages with headless Chrome instead of plain HTTP"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals `embed:""`

	Convert  ConvertCmd  `cmd:"" default:"1" help:"Interactively convert Dockerfiles to hardened base images (default)"`
	Images   ImagesCmd   `cmd:"" help:"Print the base images of a Dockerfile and their documentation URLs"`
	Discover DiscoverCmd `cmd:"" help:"Crawl the documentation site and list documentation pages"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Backend      string `enum:"ollama,gemini" default:"ollama" env:"DOCKHARDEN_BACKEND" help:"Inference backend (ollama, gemini)"`
	OllamaURL    string `name:"ollama-url" env:"OLLAMA_BASE_URL" default:"http://ollama:11434" help:"Ollama server URL"`
	Model        string `env:"DOCKHARDEN_MODEL" help:"Generation model (backend default if empty)"`
	EmbedModel   string `name:"embed-model" env:"DOCKHARDEN_EMBED_MODEL" help:"Embedding model (backend default if empty)"`
	GeminiAPIKey string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Extractor    string `enum:"trafilatura,readability" default:"trafilatura" help:"Main content extractor (trafilatura, readability)"`
	TopK         int    `name:"top-k" default:"4" help:"Documentation chunks retrieved per conversion"`
	Concurrency  int    `short:"c" default:"4" help:"Concurrent documentation fetches"`
}

// ImagesCmd is the "images" subcommand.
type ImagesCmd struct {
	Path string `arg:"" help:"Dockerfile path"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL      string `arg:"" optional:"" help:"Seed URL (defaults to the image directory of --docs-url)"`
	Sitemap  string `help:"Sitemap URL whose in-scope entries seed the crawl"`
	MaxPages int    `name:"max-pages" help:"Stop after fetching this many pages (0 for no limit)"`
	Progress bool   `help:"Show a live progress line on stderr"`
}
