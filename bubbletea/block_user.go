package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/folio"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a visitor question under a "You · 15:04" header.
type UserMessageBlock struct {
	msg    folio.Message
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(msg folio.Message, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{msg: msg, styles: styles}
}

func (b *UserMessageBlock) Update(tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *UserMessageBlock) View(width int) string {
	header := "You"
	if !b.msg.Timestamp.IsZero() {
		header += " · " + b.msg.Timestamp.Format("15:04")
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		b.styles.User.Render("> "),
		lipgloss.NewStyle().Width(max(width-2, 1)).Render(b.msg.Content),
	)
	return b.styles.Muted.Render(header) + "\n" + body
}
