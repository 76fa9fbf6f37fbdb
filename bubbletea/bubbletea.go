// Package bubbletea provides a Bubble Tea chat client for a folio
// conversation.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/folio"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// TurnDoneMsg carries the outcome of a conversation turn.
type TurnDoneMsg struct {
	Reply folio.Message
	Err   error
}

// sendTurn runs one conversation turn off the UI goroutine.
func sendTurn(ctx context.Context, conv *folio.Conversation, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := conv.Send(ctx, text)
		return TurnDoneMsg{Reply: reply, Err: err}
	}
}
