package folio

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Conversation owns a Session and runs one chat turn at a time against a
// Studio. A turn started while another is in flight is rejected with ErrBusy
// rather than queued.
type Conversation struct {
	studio Studio
	logger *slog.Logger

	busy atomic.Bool

	mu      sync.Mutex // guards session
	session *Session
}

// ConversationOption configures a Conversation.
type ConversationOption func(*Conversation)

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) ConversationOption {
	return func(c *Conversation) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConversation creates a Conversation over session.
func NewConversation(studio Studio, session *Session, opts ...ConversationOption) *Conversation {
	c := &Conversation{
		studio:  studio,
		session: session,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Busy reports whether a turn is in flight.
func (c *Conversation) Busy() bool { return c.busy.Load() }

// Snapshot returns a copy of the current session state.
func (c *Conversation) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Clone()
}

// Send runs one turn: it appends the user message, asks the Studio for a
// reply and appends it, then refreshes the follow-up suggestions. A failed
// chat call is not returned: the turn ends with ApologyText appended and the
// suggestions left untouched. Send returns the model message that closed
// the turn.
func (c *Conversation) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, fmt.Errorf("message is empty: %w", ErrValidation)
	}
	if !c.busy.CompareAndSwap(false, true) {
		return Message{}, ErrBusy
	}
	defer c.busy.Store(false)

	history := c.append(UserMessage(text))

	reply, err := c.studio.Chat(ctx, history)
	if err != nil {
		c.logger.ErrorContext(ctx, "chat failed", "session", c.session.ID, "error", err)
		apology := ModelMessage(ApologyText)
		c.append(apology)
		return apology, nil
	}
	if reply.Text == "" {
		reply.Text = ChatFallbackText
	}
	msg := reply.Message()
	c.append(msg)

	c.refreshSuggestions(ctx, text, msg.Content)
	return msg, nil
}

// append adds msg to the session and returns a copy of the resulting history.
func (c *Conversation) append(msg Message) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Messages = append(c.session.Messages, msg)
	c.session.UpdatedAt = time.Now()
	return slices.Clone(c.session.Messages)
}

// refreshSuggestions is best-effort: failures are logged and the previous
// suggestions stay in place.
func (c *Conversation) refreshSuggestions(ctx context.Context, question, answer string) {
	suggestions, err := c.studio.SuggestFollowUps(ctx, question, answer)
	if err != nil {
		c.logger.WarnContext(ctx, "suggestions unavailable", "session", c.session.ID, "error", err)
		return
	}
	if len(suggestions) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Suggestions = slices.Clone(suggestions)
	c.session.UpdatedAt = time.Now()
}
