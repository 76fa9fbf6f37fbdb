package json

import (
	"github.com/fwojciec/folio"
)

// ImageRequest is the body of an image generation request. Size and ratio
// default to 1K and 1:1.
type ImageRequest struct {
	Prompt string `json:"prompt"`
	Size   string `json:"size,omitempty"`
	Ratio  string `json:"ratio,omitempty"`
}

// Domain parses the request into a folio.ImageRequest.
func (r ImageRequest) Domain() (folio.ImageRequest, error) {
	req := folio.ImageRequest{
		Prompt: r.Prompt,
		Size:   folio.ImageSize1K,
		Ratio:  folio.AspectRatio1x1,
	}
	if r.Size != "" {
		size, err := folio.ParseImageSize(r.Size)
		if err != nil {
			return folio.ImageRequest{}, err
		}
		req.Size = size
	}
	if r.Ratio != "" {
		ratio, err := folio.ParseAspectRatio(r.Ratio)
		if err != nil {
			return folio.ImageRequest{}, err
		}
		req.Ratio = ratio
	}
	return req, req.Validate()
}

// EditRequest is the body of an image edit request. Image is a data URI or
// bare base64 PNG.
type EditRequest struct {
	Image       string `json:"image" binding:"required"`
	Instruction string `json:"instruction" binding:"required"`
}

// Image is the response carrying a generated or edited image data URI.
type Image struct {
	Image string `json:"image"`
}

// SpeechRequest is the body of a speech synthesis request.
type SpeechRequest struct {
	Text string `json:"text" binding:"required"`
}

// Speech is the raw PCM form of a synthesized utterance.
type Speech struct {
	Audio      string `json:"audio"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
	DurationMS int64  `json:"duration_ms"`
}

// NewSpeech builds a Speech response from the base64 payload and its decoded
// buffer.
func NewSpeech(payload string, buf folio.AudioBuffer) Speech {
	return Speech{
		Audio:      payload,
		SampleRate: buf.SampleRate,
		Channels:   buf.Channels,
		DurationMS: buf.Duration().Milliseconds(),
	}
}

// Bio is a grounded biography: markdown text, its HTML rendering and the
// source URLs.
type Bio struct {
	Text string   `json:"text"`
	HTML string   `json:"html"`
	URLs []string `json:"urls"`
}

// NewBio builds a Bio response. html is the rendered form of a.Text.
func NewBio(a folio.GroundedAnswer, html string) Bio {
	urls := a.URLs
	if urls == nil {
		urls = []string{}
	}
	return Bio{Text: a.Text, HTML: html, URLs: urls}
}
