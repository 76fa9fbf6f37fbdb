package mock

import (
	"context"

	"github.com/fwojciec/folio/gemini"
	"google.golang.org/genai"
)

var _ gemini.Generator = (*Generator)(nil)

// Generator is a test double for gemini.Generator.
type Generator struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenerateContent delegates to GenerateContentFn.
func (g *Generator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.GenerateContentFn(ctx, model, contents, config)
}
