package gemini

import (
	"context"

	"github.com/fwojciec/dockharden"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ dockharden.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens locally with the Gemini tokenizer, so
// prompt size can be logged without an API round trip.
type TokenCounter struct {
	tok    *tokenizer.LocalTokenizer
	system string
}

// NewTokenCounter creates a TokenCounter for model. A non-empty system
// instruction is included in every count, matching what Generate sends.
func NewTokenCounter(model, system string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok, system: system}, nil
}

// CountTokens counts the tokens a prompt of text would consume.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	var config *genai.CountTokensConfig
	if tc.system != "" {
		config = &genai.CountTokensConfig{
			SystemInstruction: genai.NewContentFromText(tc.system, genai.RoleUser),
		}
	}

	result, err := tc.tok.CountTokens(contents, config)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
