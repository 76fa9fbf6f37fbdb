package bubbletea_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/folio"
	bt "github.com/fwojciec/folio/bubbletea"
	"github.com/fwojciec/folio/mock"
	"github.com/stretchr/testify/require"
)

func newConversation(studio folio.Studio, session *folio.Session) *folio.Conversation {
	if session == nil {
		session = folio.NewSession("Hello! I am Ada's AI assistant.")
	}
	return folio.NewConversation(studio, session, folio.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, conv *folio.Conversation) bt.Model {
	t.Helper()
	return initModelWithSize(t, conv, 80, 24)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, conv *folio.Conversation, width, height int) bt.Model {
	t.Helper()
	m := bt.New(conv, folio.DefaultTheme())
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// echoStudio answers every question with a fixed reply and suggestion list.
func echoStudio(reply string, suggestions ...string) *mock.Studio {
	return &mock.Studio{
		ChatFn: func(context.Context, []folio.Message) (folio.Reply, error) {
			return folio.Reply{Text: reply}, nil
		},
		SuggestFollowUpsFn: func(context.Context, string, string) ([]string, error) {
			return suggestions, nil
		},
	}
}
