package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// MessageBlock is one entry of the conversation viewport. View takes the
// width so the root model owns layout.
type MessageBlock interface {
	Update(tea.Msg) (MessageBlock, tea.Cmd)
	View(width int) string
}

// Collapsible is a MessageBlock that Tab can expand and collapse.
type Collapsible interface {
	MessageBlock
	Collapsed() bool
}

// ToggleMsg tells a Collapsible block to flip its state.
type ToggleMsg struct{}
