package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/markdown"
)

var _ MessageBlock = (*ReplyBlock)(nil)

// ReplyBlock renders a model reply as markdown. The rendering is cached per
// width since replies never change once received.
type ReplyBlock struct {
	text    string
	theme   folio.Theme
	byWidth map[int]string
}

// NewReplyBlock creates a ReplyBlock.
func NewReplyBlock(text string, theme folio.Theme) *ReplyBlock {
	return &ReplyBlock{text: text, theme: theme, byWidth: make(map[int]string)}
}

func (b *ReplyBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ReplyBlock) View(width int) string {
	if out, ok := b.byWidth[width]; ok {
		return out
	}
	out := markdown.Render(b.text, width, b.theme)
	b.byWidth[width] = out
	return out
}
