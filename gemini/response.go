package gemini

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/fwojciec/folio"
	"google.golang.org/genai"
)

// maxSuggestions caps how many follow-up questions are surfaced.
const maxSuggestions = 4

// candidateParts returns the content parts of the first candidate, or nil.
func candidateParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return nil
	}
	return c.Content.Parts
}

// ResponseText concatenates the non-thought text parts of the first candidate.
func ResponseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, p := range candidateParts(resp) {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// ThoughtText concatenates the thought parts of the first candidate.
func ThoughtText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, p := range candidateParts(resp) {
		if p != nil && p.Thought {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// FirstInlineData returns the first part carrying inline binary data. Later
// matching parts are ignored.
func FirstInlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	for _, p := range candidateParts(resp) {
		if p != nil && p.InlineData != nil {
			return p.InlineData
		}
	}
	return nil
}

// LeadingInlineData returns the inline data of the first part only. Speech
// responses carry their audio there.
func LeadingInlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	parts := candidateParts(resp)
	if len(parts) == 0 || parts[0] == nil {
		return nil
	}
	return parts[0].InlineData
}

// GroundingURLs returns the web URIs of the first candidate's grounding
// chunks in response order. Duplicates are kept; see folio.NewGroundedAnswer.
func GroundingURLs(resp *genai.GenerateContentResponse) []string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return nil
	}
	var urls []string
	for _, chunk := range gm.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		urls = append(urls, chunk.Web.URI)
	}
	return urls
}

// ParseSuggestions strictly decodes a JSON array of strings. Blank entries
// are dropped and at most maxSuggestions are kept. Anything unusable yields a
// copy of folio.DefaultSuggestions.
func ParseSuggestions(text string) []string {
	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return slices.Clone(folio.DefaultSuggestions)
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	if len(out) == 0 {
		return slices.Clone(folio.DefaultSuggestions)
	}
	return out
}
