package folio

// Theme maps semantic roles to ANSI color indices (0-15) so terminal output
// follows the user's color scheme. A negative index means no color.
type Theme struct {
	User       int // user message accent
	Thinking   int // reasoning trace
	Suggestion int // follow-up question chips
	Error      int
	Muted      int // status line, code gutters, source URLs
	Accent     int // headings, links, spinner
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		User:       4,
		Thinking:   8,
		Suggestion: 6,
		Error:      1,
		Muted:      8,
		Accent:     5,
	}
}
