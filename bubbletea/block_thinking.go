package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ Collapsible = (*ThinkingBlock)(nil)

// ThinkingBlock renders the reasoning trace of a reply with a collapsible
// toggle.
type ThinkingBlock struct {
	text      string
	collapsed bool
	styles    Styles
}

// NewThinkingBlock creates a ThinkingBlock that starts collapsed.
func NewThinkingBlock(text string, styles Styles) *ThinkingBlock {
	return &ThinkingBlock{text: text, collapsed: true, styles: styles}
}

// Collapsed reports whether the trace is hidden.
func (b *ThinkingBlock) Collapsed() bool { return b.collapsed }

func (b *ThinkingBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ThinkingBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	header := b.styles.Thinking.Render(wrap.Render(indicator + " Thinking"))
	if b.collapsed {
		return header
	}
	return header + "\n" + b.styles.Thinking.Render(wrap.Render(b.text))
}
