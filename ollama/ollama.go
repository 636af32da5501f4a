// Package ollama implements embedding and generation against an Ollama server.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/dockharden"
	"github.com/ollama/ollama/api"
)

// Defaults match a docker-compose deployment with a service named ollama.
const (
	DefaultBaseURL = "http://ollama:11434"
	DefaultModel   = "llama3.2"
)

// Ensure Client implements the inference interfaces at compile time.
var (
	_ dockharden.Embedder  = (*Client)(nil)
	_ dockharden.Generator = (*Client)(nil)
)

// Client talks to an Ollama server.
type Client struct {
	api        *api.Client
	model      string
	embedModel string
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the generation model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithEmbedModel sets the embedding model.
func WithEmbedModel(model string) Option {
	return func(c *Client) {
		c.embedModel = model
	}
}

// NewClient creates a Client for the server at baseURL using httpClient.
// If httpClient is nil, http.DefaultClient is used.
func NewClient(baseURL string, httpClient *http.Client, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, dockharden.Errorf(dockharden.EINVALID, "invalid Ollama base URL: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		api:        api.NewClient(u, httpClient),
		model:      DefaultModel,
		embedModel: DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the generation model name.
func (c *Client) Model() string {
	return c.model
}

// Heartbeat checks that the server is reachable.
func (c *Client) Heartbeat(ctx context.Context) error {
	if err := c.api.Heartbeat(ctx); err != nil {
		return fmt.Errorf("ollama unreachable: %w", err)
	}
	return nil
}

// Embed returns one embedding per input text.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := c.api.Embed(ctx, &api.EmbedRequest{
		Model: c.embedModel,
		Input: texts,
	})
	if err != nil {
		return nil, wrapError(err, c.embedModel)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, dockharden.Errorf(dockharden.EINTERNAL, "ollama returned %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}
	return resp.Embeddings, nil
}

// Generate returns the model's completion of prompt under the system instruction.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  c.model,
		System: system,
		Prompt: prompt,
		Stream: &stream,
	}

	var sb strings.Builder
	err := c.api.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", wrapError(err, c.model)
	}
	return sb.String(), nil
}

// wrapError maps a missing model to ENOTFOUND.
func wrapError(err error, model string) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return dockharden.Errorf(dockharden.ENOTFOUND, "ollama model %q not found: %s", model, statusErr.ErrorMessage)
	}
	return fmt.Errorf("ollama: %w", err)
}
