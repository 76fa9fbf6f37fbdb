package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/folio"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	User       lipgloss.Style
	Thinking   lipgloss.Style
	Suggestion lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
	Accent     lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t folio.Theme) Styles {
	return Styles{
		User:       lipgloss.NewStyle().Foreground(ansiColor(t.User)).Bold(true),
		Thinking:   lipgloss.NewStyle().Foreground(ansiColor(t.Thinking)).Faint(true),
		Suggestion: lipgloss.NewStyle().Foreground(ansiColor(t.Suggestion)),
		Error:      lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:      lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:     lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
