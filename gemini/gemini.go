// Package gemini implements embedding, generation and token counting with
// Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/dockharden"
	"google.golang.org/genai"
)

// Default models.
const (
	DefaultModel      = "gemini-2.5-flash"
	DefaultEmbedModel = "gemini-embedding-001"
)

// Ensure Client implements the inference interfaces at compile time.
var (
	_ dockharden.Embedder  = (*Client)(nil)
	_ dockharden.Generator = (*Client)(nil)
)

// Client implements dockharden.Embedder and dockharden.Generator.
type Client struct {
	client     *genai.Client
	model      string
	embedModel string
}

// NewClient creates a new Client. Empty model names select the defaults.
func NewClient(client *genai.Client, model, embedModel string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}
	return &Client{client: client, model: model, embedModel: embedModel}
}

// Model returns the generation model name.
func (c *Client) Model() string {
	return c.model
}

// Generate answers prompt under the system instruction.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", dockharden.Errorf(dockharden.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(system),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", dockharden.Errorf(dockharden.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// Embed returns one embedding per text.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	resp, err := c.client.Models.EmbedContent(ctx, c.embedModel, contents, nil)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, dockharden.Errorf(dockharden.EINTERNAL, "gemini returned wrong number of embeddings for %d texts", len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		vectors[i] = e.Values
	}
	return vectors, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// An empty system instruction is omitted.
func BuildConfig(system string) *genai.GenerateContentConfig {
	temp := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}
