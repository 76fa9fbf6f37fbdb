// Package markdown renders model output, which is markdown, for two
// surfaces: ANSI-styled text for terminals and HTML for the website. Both
// parse with goldmark and the GitHub Flavored Markdown extensions.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/folio"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, list items and quotes are word-wrapped to width (80 when
// width is not positive). Code blocks are printed without reflow. Raw HTML
// is dropped.
func Render(source string, width int, theme folio.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	return newTerminal(theme).render([]byte(source), width)
}

// HTML converts markdown source to an HTML fragment. Raw HTML in the source
// is omitted.
func HTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return buf.String(), nil
}

// WithSources appends a "Sources" list of urls to a markdown text. The text
// is returned unchanged when there are no urls.
func WithSources(text string, urls []string) string {
	if len(urls) == 0 {
		return text
	}
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(text, "\n"))
	sb.WriteString("\n\n**Sources**\n\n")
	for _, u := range urls {
		sb.WriteString("- <")
		sb.WriteString(u)
		sb.WriteString(">\n")
	}
	return sb.String()
}
