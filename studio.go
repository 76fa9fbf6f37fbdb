package folio

import (
	"context"
	"slices"
)

// Studio is the generative-media boundary exposed to user interfaces.
//
// Only ErrTransport and ErrGeneration (and ErrValidation for bad input)
// cross this boundary. Operations for which an empty provider answer is a
// legitimate outcome report it through ok=false instead of an error.
type Studio interface {
	// Chat answers the final entry of history using the whole history as
	// context. history must not be empty.
	Chat(ctx context.Context, history []Message) (Reply, error)

	// SuggestFollowUps proposes short follow-up questions for the last
	// exchange. Unparseable output yields DefaultSuggestions, never an error.
	SuggestFollowUps(ctx context.Context, question, answer string) ([]string, error)

	// GenerateImage returns a PNG data URI. A response without an image
	// fails with ErrGeneration.
	GenerateImage(ctx context.Context, req ImageRequest) (string, error)

	// EditImage applies instruction to a data-URI image and returns the edited
	// image as a data URI. ok is false when the provider returned no image.
	EditImage(ctx context.Context, source, instruction string) (uri string, ok bool, err error)

	// SynthesizeSpeech returns base64 PCM16 mono 24 kHz audio. ok is false
	// when the provider returned no audio.
	SynthesizeSpeech(ctx context.Context, text string) (payload string, ok bool, err error)

	// SearchBio runs a web-grounded biography search for subject.
	SearchBio(ctx context.Context, subject string) (GroundedAnswer, error)
}

// GroundedAnswer is a search-grounded text plus its deduplicated source URLs.
type GroundedAnswer struct {
	Text string
	URLs []string
}

// NewGroundedAnswer builds a GroundedAnswer, dropping empty and repeated URLs
// while keeping first-seen order.
func NewGroundedAnswer(text string, urls []string) GroundedAnswer {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return GroundedAnswer{Text: text, URLs: slices.Clip(out)}
}
