// Package mock provides test doubles for folio interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/folio"
)

// Interface compliance checks.
var (
	_ folio.Studio      = (*Studio)(nil)
	_ folio.Credentials = (*Credentials)(nil)
)

// Studio is a test double for folio.Studio.
// Set the function fields for the methods you need.
type Studio struct {
	ChatFn             func(ctx context.Context, history []folio.Message) (folio.Reply, error)
	SuggestFollowUpsFn func(ctx context.Context, question, answer string) ([]string, error)
	GenerateImageFn    func(ctx context.Context, req folio.ImageRequest) (string, error)
	EditImageFn        func(ctx context.Context, source, instruction string) (string, bool, error)
	SynthesizeSpeechFn func(ctx context.Context, text string) (string, bool, error)
	SearchBioFn        func(ctx context.Context, subject string) (folio.GroundedAnswer, error)
}

// Chat delegates to ChatFn.
func (s *Studio) Chat(ctx context.Context, history []folio.Message) (folio.Reply, error) {
	return s.ChatFn(ctx, history)
}

// SuggestFollowUps delegates to SuggestFollowUpsFn.
func (s *Studio) SuggestFollowUps(ctx context.Context, question, answer string) ([]string, error) {
	return s.SuggestFollowUpsFn(ctx, question, answer)
}

// GenerateImage delegates to GenerateImageFn.
func (s *Studio) GenerateImage(ctx context.Context, req folio.ImageRequest) (string, error) {
	return s.GenerateImageFn(ctx, req)
}

// EditImage delegates to EditImageFn.
func (s *Studio) EditImage(ctx context.Context, source, instruction string) (string, bool, error) {
	return s.EditImageFn(ctx, source, instruction)
}

// SynthesizeSpeech delegates to SynthesizeSpeechFn.
func (s *Studio) SynthesizeSpeech(ctx context.Context, text string) (string, bool, error) {
	return s.SynthesizeSpeechFn(ctx, text)
}

// SearchBio delegates to SearchBioFn.
func (s *Studio) SearchBio(ctx context.Context, subject string) (folio.GroundedAnswer, error) {
	return s.SearchBioFn(ctx, subject)
}

// Credentials is a test double for folio.Credentials.
type Credentials struct {
	APIKeyFn func(ctx context.Context) (string, error)
}

// APIKey delegates to APIKeyFn.
func (c *Credentials) APIKey(ctx context.Context) (string, error) {
	return c.APIKeyFn(ctx)
}
