package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/folio"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ folio.Studio = (*Client)(nil)

// Generator is the slice of the genai Models service the client needs.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Connector builds a Generator for one call from an API key.
type Connector func(ctx context.Context, apiKey string) (Generator, error)

// Connect is the default Connector. It creates a genai client for the Gemini
// API backend.
func Connect(ctx context.Context, apiKey string) (Generator, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return gc.Models, nil
}

// Client implements [folio.Studio] for the Google Gemini API.
//
// No genai client is held between calls: every operation acquires the API
// key, connects, issues one request and drops the connection, so credential
// rotation takes effect on the next call.
type Client struct {
	creds   folio.Credentials
	connect Connector
	models  folio.ModelConfig
	persona folio.Persona
	logger  *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithModels overrides the per-operation model selection.
func WithModels(m folio.ModelConfig) Option {
	return func(c *Client) { c.models = m }
}

// WithPersona sets the person the chat assistant represents.
func WithPersona(p folio.Persona) Option {
	return func(c *Client) { c.persona = p }
}

// WithConnector replaces the default genai Connector.
func WithConnector(fn Connector) Option {
	return func(c *Client) { c.connect = fn }
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Gemini [Client] that reads its API key from creds.
func New(creds folio.Credentials, opts ...Option) *Client {
	c := &Client{
		creds:   creds,
		connect: Connect,
		models:  folio.DefaultModels(),
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Chat implements [folio.Studio].
func (c *Client) Chat(ctx context.Context, history []folio.Message) (folio.Reply, error) {
	call, err := ChatCall(c.models, c.persona, history)
	if err != nil {
		return folio.Reply{}, fmt.Errorf("gemini: %s: %w", OpChat, err)
	}
	resp, err := c.do(ctx, call)
	if err != nil {
		return folio.Reply{}, err
	}
	text := ResponseText(resp)
	if text == "" {
		text = folio.ChatFallbackText
	}
	return folio.Reply{Text: text, Thinking: ThoughtText(resp)}, nil
}

// SuggestFollowUps implements [folio.Studio].
func (c *Client) SuggestFollowUps(ctx context.Context, question, answer string) ([]string, error) {
	call, err := SuggestionCall(c.models, question, answer)
	if err != nil {
		return nil, fmt.Errorf("gemini: %s: %w", OpSuggest, err)
	}
	resp, err := c.do(ctx, call)
	if err != nil {
		return nil, err
	}
	return ParseSuggestions(ResponseText(resp)), nil
}

// GenerateImage implements [folio.Studio].
func (c *Client) GenerateImage(ctx context.Context, req folio.ImageRequest) (string, error) {
	call, err := ImageCall(c.models, req)
	if err != nil {
		return "", fmt.Errorf("gemini: %s: %w", OpGenerate, err)
	}
	resp, err := c.do(ctx, call)
	if err != nil {
		return "", err
	}
	blob := FirstInlineData(resp)
	if blob == nil {
		return "", fmt.Errorf("gemini: %s: no image part found in the response: %w", OpGenerate, folio.ErrGeneration)
	}
	return folio.PNGDataURI(blob.Data), nil
}

// EditImage implements [folio.Studio].
func (c *Client) EditImage(ctx context.Context, source, instruction string) (string, bool, error) {
	call, err := EditCall(c.models, source, instruction)
	if err != nil {
		return "", false, fmt.Errorf("gemini: %s: %w", OpEdit, err)
	}
	resp, err := c.do(ctx, call)
	if err != nil {
		return "", false, err
	}
	blob := FirstInlineData(resp)
	if blob == nil {
		return "", false, nil
	}
	return folio.PNGDataURI(blob.Data), true, nil
}

// SynthesizeSpeech implements [folio.Studio].
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) (string, bool, error) {
	call, err := SpeechCall(c.models, text)
	if err != nil {
		return "", false, fmt.Errorf("gemini: %s: %w", OpSpeech, err)
	}
	resp, err := c.do(ctx, call)
	if err != nil {
		return "", false, err
	}
	blob := LeadingInlineData(resp)
	if blob == nil || len(blob.Data) == 0 {
		return "", false, nil
	}
	return base64.StdEncoding.EncodeToString(blob.Data), true, nil
}

// SearchBio implements [folio.Studio].
func (c *Client) SearchBio(ctx context.Context, subject string) (folio.GroundedAnswer, error) {
	call, err := SearchCall(c.models, subject)
	if err != nil {
		return folio.GroundedAnswer{}, fmt.Errorf("gemini: %s: %w", OpSearch, err)
	}
	resp, err := c.do(ctx, call)
	if err != nil {
		return folio.GroundedAnswer{}, err
	}
	text := ResponseText(resp)
	if text == "" {
		text = folio.SearchFallbackText
	}
	return folio.NewGroundedAnswer(text, GroundingURLs(resp)), nil
}

// do acquires the credential, connects and issues call. Every failure is
// reported as folio.ErrTransport.
func (c *Client) do(ctx context.Context, call Call) (*genai.GenerateContentResponse, error) {
	key, err := c.creds.APIKey(ctx)
	if err != nil {
		return nil, transportError(call.Op, "credentials", err)
	}
	gen, err := c.connect(ctx, key)
	if err != nil {
		return nil, transportError(call.Op, "connect", err)
	}

	start := time.Now()
	resp, err := gen.GenerateContent(ctx, call.Model, call.Contents, call.Config)
	c.logger.DebugContext(ctx, "gemini call",
		"op", call.Op,
		"model", call.Model,
		"duration", time.Since(start),
		"ok", err == nil,
	)
	if err != nil {
		return nil, transportError(call.Op, "generate", err)
	}
	if resp == nil {
		resp = &genai.GenerateContentResponse{}
	}
	return resp, nil
}

func transportError(op, stage string, err error) error {
	if errors.Is(err, folio.ErrTransport) {
		return fmt.Errorf("gemini: %s: %s: %w", op, stage, err)
	}
	return fmt.Errorf("gemini: %s: %s: %w: %w", op, stage, folio.ErrTransport, err)
}
