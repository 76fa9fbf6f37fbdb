package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/folio"
	bt "github.com/fwojciec/folio/bubbletea"
	"github.com/fwojciec/folio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	m := bt.New(newConversation(&mock.Studio{}, nil), folio.DefaultTheme())
	assert.False(t, m.Running())
	assert.NoError(t, m.Err())
	assert.Equal(t, folio.DefaultSuggestions, m.Suggestions())
	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_Update(t *testing.T) {
	t.Parallel()

	t.Run("window size renders the greeting and suggestions", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(&mock.Studio{}, nil))
		assert.Equal(t, 80, m.Viewport.Width)
		assert.Equal(t, 18, m.Viewport.Height) // 24 - input - suggestions - status - 3 separators
		view := m.View()
		assert.Contains(t, view, "Hello! I am Ada's AI assistant.")
		assert.Contains(t, view, "What are your projects?")
		assert.Contains(t, view, "Enter to send")
	})

	t.Run("resize re-renders content at the new width", func(t *testing.T) {
		t.Parallel()
		session := folio.NewSession("word1 word2 word3 word4 word5 word6 word7 word8")
		m := initModelWithSize(t, newConversation(&mock.Studio{}, session), 30, 20)
		m = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
		assert.Equal(t, 34, m.Viewport.Height)

		found := false
		for _, line := range strings.Split(m.Viewport.View(), "\n") {
			if strings.Contains(line, "word1") && strings.Contains(line, "word8") {
				found = true
			}
		}
		assert.True(t, found, "expected word1 and word8 on one line:\n%s", m.Viewport.View())
	})

	t.Run("suggestion line is truncated to the width", func(t *testing.T) {
		t.Parallel()
		m := initModelWithSize(t, newConversation(&mock.Studio{}, nil), 30, 20)
		lines := strings.Split(m.View(), "\n")
		var suggestionLine string
		for _, l := range lines {
			if strings.Contains(l, "Try:") {
				suggestionLine = l
			}
		}
		require.NotEmpty(t, suggestionLine)
		assert.Contains(t, suggestionLine, "…")
		assert.NotContains(t, suggestionLine, "Contact info")
	})

	t.Run("ctrl+c when idle quits", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(&mock.Studio{}, nil))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
	})

	t.Run("enter with empty input does nothing", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(&mock.Studio{}, nil))
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.False(t, updated.(bt.Model).Running())
	})

	t.Run("enter submits and marks the model busy", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(echoStudio("hi"), nil))
		m.Input.SetValue("hello")
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model := updated.(bt.Model)
		assert.NotNil(t, cmd)
		assert.True(t, model.Running())
		assert.Empty(t, model.Input.Value())
		assert.Contains(t, model.View(), "> ")
		assert.Contains(t, model.View(), "Thinking...")
	})

	t.Run("enter while busy is ignored", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(echoStudio("hi"), nil))
		m.Input.SetValue("first")
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		require.True(t, m.Running())

		m.Input.SetValue("second")
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.Equal(t, "second", updated.(bt.Model).Input.Value())
	})

	t.Run("typing is ignored while busy", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(echoStudio("hi"), nil))
		m.Input.SetValue("first")
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
		assert.Empty(t, m.Input.Value())
	})

	t.Run("turn done renders the reply", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(echoStudio("hi"), nil))
		m.Input.SetValue("hello")
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		m = updateModel(t, m, bt.TurnDoneMsg{Reply: folio.ModelMessage("**Nice** to meet you")})

		assert.False(t, m.Running())
		assert.NoError(t, m.Err())
		assert.Contains(t, m.View(), "Nice")
		assert.NotContains(t, m.View(), "**")
		assert.Contains(t, m.View(), "Enter to send")
	})

	t.Run("turn error is shown and the input is usable again", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(echoStudio("hi"), nil))
		m.Input.SetValue("hello")
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		m = updateModel(t, m, bt.TurnDoneMsg{Err: folio.ErrBusy})

		assert.False(t, m.Running())
		assert.ErrorIs(t, m.Err(), folio.ErrBusy)
		assert.Contains(t, m.View(), "Error: turn in progress")
	})

	t.Run("cancelled turn is not an error", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(echoStudio("hi"), nil))
		m.Input.SetValue("hello")
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
		require.True(t, m.Running())
		m = updateModel(t, m, bt.TurnDoneMsg{Err: context.Canceled})
		assert.NoError(t, m.Err())
	})

	t.Run("ctrl+n cycles through suggestions", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(&mock.Studio{}, nil))
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
		assert.Equal(t, "What are your projects?", m.Input.Value())
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
		assert.Equal(t, "Tell me about your education", m.Input.Value())
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
		assert.Equal(t, "What are your projects?", m.Input.Value())
	})

	t.Run("tab toggles the reasoning trace", func(t *testing.T) {
		t.Parallel()
		session := folio.NewSession("Hello!")
		reply := folio.Reply{Text: "The answer.", Thinking: "weighing options"}.Message()
		session.Messages = append(session.Messages, folio.UserMessage("q"), reply)
		m := initModel(t, newConversation(&mock.Studio{}, session))

		assert.NotContains(t, m.View(), "weighing options")
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Contains(t, m.View(), "weighing options")
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyTab})
		assert.NotContains(t, m.View(), "weighing options")
	})

	t.Run("spinner ticks are dropped when idle", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, newConversation(&mock.Studio{}, nil))
		_, cmd := m.Update(m.Spinner.Tick())
		assert.Nil(t, cmd)
	})
}

func TestModel_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("a turn shows the reply and new suggestions", func(t *testing.T) {
		t.Parallel()
		conv := newConversation(echoStudio("I build **compilers**.", "Which languages?", "Open source?"), nil)
		tm := teatest.NewTestModel(t, bt.New(conv, folio.DefaultTheme()),
			teatest.WithInitialTermSize(80, 24),
		)

		tm.Type("what do you do?")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("compilers")) &&
				bytes.Contains(out, []byte("Which languages?")) &&
				bytes.Contains(out, []byte("Enter to send"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.Model)
		require.True(t, ok)
		assert.False(t, final.Running())
		assert.NoError(t, final.Err())
		assert.Equal(t, []string{"Which languages?", "Open source?"}, final.Suggestions())

		s := conv.Snapshot()
		require.Len(t, s.Messages, 3)
		assert.Equal(t, "what do you do?", s.Messages[1].Content)
	})

	t.Run("provider failure shows the apology and the chat continues", func(t *testing.T) {
		t.Parallel()
		calls := 0
		studio := &mock.Studio{
			ChatFn: func(context.Context, []folio.Message) (folio.Reply, error) {
				calls++
				if calls == 1 {
					return folio.Reply{}, errors.New("simulated outage")
				}
				return folio.Reply{Text: "Back online."}, nil
			},
			SuggestFollowUpsFn: func(context.Context, string, string) ([]string, error) {
				return nil, nil
			},
		}
		conv := newConversation(studio, nil)
		tm := teatest.NewTestModel(t, bt.New(conv, folio.DefaultTheme()),
			teatest.WithInitialTermSize(80, 24),
		)

		tm.Type("hello")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("Sorry, something went wrong."))
		}, teatest.WithDuration(5*time.Second))

		tm.Type("again")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("Back online."))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
		tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))
		assert.Len(t, conv.Snapshot().Messages, 5)
	})
}
