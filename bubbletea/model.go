package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/folio"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the folio chat client.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable conversation area. Exported for test access.
	Viewport viewport.Model
	// Spinner animates the status line while a turn is in flight.
	Spinner spinner.Model

	conv   *folio.Conversation
	theme  folio.Theme
	styles Styles

	blocks      []MessageBlock
	blockFocus  int // index of the focused Collapsible block (-1 = none)
	suggestions []string
	suggestion  int // index of the next suggestion offered by Ctrl+N

	running bool
	cancel  context.CancelFunc
	err     error
	ready   bool
}

// New creates a TUI Model bound to conv.
func New(conv *folio.Conversation, theme folio.Theme) Model {
	styles := NewStyles(theme)

	ti := textinput.New()
	ti.Placeholder = "Ask me anything..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Accent))

	return Model{
		Input:       ti,
		Spinner:     sp,
		conv:        conv,
		theme:       theme,
		styles:      styles,
		blockFocus:  -1,
		suggestions: conv.Snapshot().Suggestions,
	}
}

// Running returns whether a turn is in flight.
func (m Model) Running() bool { return m.running }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Suggestions returns the follow-up questions currently offered.
func (m Model) Suggestions() []string { return m.suggestions }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case TurnDoneMsg:
		return m.finishTurn(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.suggestionLine())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	const (
		inputHeight      = 1
		suggestionHeight = 1
		statusHeight     = 1
		separators       = 3 // newlines between sections
	)
	vpHeight := max(msg.Height-inputHeight-suggestionHeight-statusHeight-separators, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderSession()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = msg.Width
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submit(text)

	case tea.KeyCtrlN:
		if !m.running && len(m.suggestions) > 0 {
			m.Input.SetValue(m.suggestions[m.suggestion%len(m.suggestions)])
			m.Input.CursorEnd()
			m.suggestion++
		}
		return m, nil

	case tea.KeyTab:
		if !m.running && m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		if !m.running {
			m = m.cycleFocusPrev()
		}
		return m, nil
	}

	if m.running {
		return m, nil
	}
	// Character keys go to the input only: 'j'/'k' would otherwise scroll.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()
	m.err = nil
	m.suggestion = 0

	m.blocks = append(m.blocks, NewUserMessageBlock(folio.UserMessage(text), m.styles))
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true

	return m, tea.Batch(sendTurn(ctx, m.conv, text), m.Spinner.Tick)
}

func (m Model) finishTurn(msg TurnDoneMsg) (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.running = false

	switch {
	case msg.Err != nil && !errors.Is(msg.Err, context.Canceled):
		m.err = msg.Err
		m.blocks = append(m.blocks, NewErrorBlock(msg.Err, m.styles))
	case msg.Err == nil:
		m = m.appendReply(msg.Reply)
	}
	m.suggestions = m.conv.Snapshot().Suggestions

	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m, m.Input.Focus()
}

// renderSession creates blocks from the conversation so far.
func (m Model) renderSession() Model {
	for _, msg := range m.conv.Snapshot().Messages {
		switch msg.Role {
		case folio.RoleUser:
			m.blocks = append(m.blocks, NewUserMessageBlock(msg, m.styles))
		case folio.RoleModel:
			m = m.appendReply(msg)
		}
	}
	return m
}

func (m Model) appendReply(msg folio.Message) Model {
	if msg.Thinking != "" {
		m.blocks = append(m.blocks, NewThinkingBlock(msg.Thinking, m.styles))
		m.blockFocus = len(m.blocks) - 1
	}
	m.blocks = append(m.blocks, NewReplyBlock(msg.Content, m.theme))
	return m
}

func (m Model) renderContent() string {
	views := make([]string, len(m.blocks))
	for i, block := range m.blocks {
		views[i] = block.View(m.Viewport.Width)
	}
	return strings.Join(views, "\n\n")
}

// cycleFocusPrev moves blockFocus to the previous collapsible block,
// wrapping around.
func (m Model) cycleFocusPrev() Model {
	n := len(m.blocks)
	start := m.blockFocus - 1
	if start < 0 {
		start = n - 1
	}
	for i := range n {
		idx := (start - i + n) % n
		if _, ok := m.blocks[idx].(Collapsible); ok {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func (m Model) suggestionLine() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	line := "Try: " + strings.Join(m.suggestions, " · ")
	line = runewidth.Truncate(line, m.Viewport.Width, "…")
	return m.styles.Suggestion.Render(line)
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.running {
		return m.Spinner.View() + " " + m.styles.Muted.Render("Thinking...")
	}
	return m.styles.Muted.Render("Enter to send, Ctrl+N for a suggestion, Ctrl+C to quit")
}
