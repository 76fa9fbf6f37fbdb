package bubbletea

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/folio"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock renders a turn that could not run, with a hint for the known
// failure categories.
type ErrorBlock struct {
	err    error
	styles Styles
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(err error, styles Styles) *ErrorBlock {
	return &ErrorBlock{err: err, styles: styles}
}

func (b *ErrorBlock) Update(tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ErrorBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	out := b.styles.Error.Render(wrap.Render("Error: " + b.err.Error()))
	if h := hint(b.err); h != "" {
		out += "\n" + b.styles.Muted.Render(wrap.Render(h))
	}
	return out
}

func hint(err error) string {
	switch {
	case errors.Is(err, folio.ErrBusy):
		return "Wait for the current answer before asking again."
	case errors.Is(err, folio.ErrTransport):
		return "The model provider could not be reached. Check the API key and the network."
	case errors.Is(err, folio.ErrValidation):
		return "The message was not accepted."
	}
	return ""
}
