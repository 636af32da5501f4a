package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/dockharden"
	"github.com/fwojciec/dockharden/gemini"
	"github.com/fwojciec/dockharden/goquery"
	"github.com/fwojciec/dockharden/htmltomarkdown"
	dhhttp "github.com/fwojciec/dockharden/http"
	"github.com/fwojciec/dockharden/ollama"
	"github.com/fwojciec/dockharden/rag"
	"github.com/fwojciec/dockharden/readability"
	"github.com/fwojciec/dockharden/rod"
	dhslog "github.com/fwojciec/dockharden/slog"
	"github.com/fwojciec/dockharden/sqlite"
	"github.com/fwojciec/dockharden/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database holding the chunk index for the session.
	DB *sqlite.DB

	// Services for end-to-end testing. Wiring is skipped for any that are set.
	Fetcher dockharden.Fetcher
	Asker   dockharden.Asker

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dockharden"),
		kong.Description("Convert Dockerfiles to hardened base images using their published documentation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:     ctx,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
		Globals: &cli.Globals,
		Links:   goquery.NewLinkExtractor(),
	}
	defer m.Close()

	cmd := strings.Fields(kongCtx.Command())[0]

	if cmd == "convert" || cmd == "discover" {
		if err := m.wireFetcher(deps); err != nil {
			return err
		}
	}

	if cmd == "discover" {
		deps.Sitemaps = dhslog.NewLoggingSitemapService(dhhttp.NewSitemapService(nil), logger)
	}

	if cmd == "convert" && m.Asker == nil {
		if err := m.wireAsker(ctx, deps, &cli.Convert); err != nil {
			return err
		}
	}
	if m.Asker != nil {
		deps.Asker = m.Asker
	}

	return kongCtx.Run(deps)
}

// wireFetcher selects the page fetcher and wraps it with logging.
func (m *Main) wireFetcher(deps *Dependencies) error {
	fetcher := m.Fetcher
	if fetcher == nil {
		if deps.Globals.Render {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = dhhttp.NewFetcher()
		}
		m.closers = append(m.closers, fetcher.Close)
	}
	deps.Fetcher = dhslog.NewLoggingFetcher(fetcher, deps.Logger)
	return nil
}

// wireAsker builds the retrieval pipeline for the selected backend.
func (m *Main) wireAsker(ctx context.Context, deps *Dependencies, c *ConvertCmd) error {
	var extractor dockharden.Extractor = trafilatura.NewExtractor()
	if c.Extractor == "readability" {
		extractor = readability.NewExtractor()
	}

	m.DB = sqlite.NewDB(":memory:")
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open chunk index: %w", err)
	}
	m.closers = append(m.closers, m.DB.Close)

	system := rag.SystemInstruction(deps.Globals.DocsURL)
	pipeline := &rag.Pipeline{
		Loader: &rag.Loader{
			Fetcher:     deps.Fetcher,
			Extractor:   extractor,
			Converter:   htmltomarkdown.NewConverter(),
			Concurrency: c.Concurrency,
			Logger:      deps.Logger,
		},
		Splitter: rag.NewSplitter(),
		Index:    sqlite.NewIndex(m.DB),
		System:   system,
		TopK:     c.TopK,
		Logger:   deps.Logger,
	}

	var model string
	switch c.Backend {
	case "gemini":
		if c.GeminiAPIKey == "" {
			fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return dockharden.Errorf(dockharden.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		g := gemini.NewClient(client, c.Model, c.EmbedModel)
		pipeline.Embedder, pipeline.Generator, model = g, g, g.Model()

		if tc, err := gemini.NewTokenCounter(model, system); err != nil {
			deps.Logger.Debug("token counting disabled", "model", model, "err", err)
		} else {
			pipeline.TokenCounter = tc
		}

	default:
		o, err := ollama.NewClient(c.OllamaURL, nil,
			ollama.WithModel(valueOr(c.Model, ollama.DefaultModel)),
			ollama.WithEmbedModel(valueOr(c.EmbedModel, ollama.DefaultModel)),
		)
		if err != nil {
			return err
		}
		if err := o.Heartbeat(ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "Hint: Set OLLAMA_BASE_URL or --ollama-url to a running Ollama server (tried %s)\n", c.OllamaURL)
			return err
		}
		pipeline.Embedder, pipeline.Generator, model = o, o, o.Model()
	}

	pipeline.Embedder = dhslog.NewLoggingEmbedder(pipeline.Embedder, deps.Logger)
	pipeline.Generator = dhslog.NewLoggingGenerator(pipeline.Generator, model, deps.Logger)

	m.Asker = pipeline
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
