// Package json defines the JSON wire format of the folio HTTP API.
package json

import (
	"encoding/json"
	"time"

	"github.com/fwojciec/folio"
)

// Version is the session envelope version.
const Version = 1

// Session is the v1 envelope for a conversation session.
type Session struct {
	Version     int       `json:"version"`
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Busy        bool      `json:"busy"`
	Messages    []Message `json:"messages"`
	Suggestions []string  `json:"suggestions"`
}

// Message is the JSON representation of a folio.Message.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Thinking  string    `json:"thinking,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSession converts a session snapshot to its envelope. Slices are never
// nil so clients always see arrays.
func NewSession(s folio.Session, busy bool) Session {
	msgs := make([]Message, len(s.Messages))
	for i, m := range s.Messages {
		msgs[i] = NewMessage(m)
	}
	suggestions := make([]string, len(s.Suggestions))
	copy(suggestions, s.Suggestions)
	return Session{
		Version:     Version,
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Busy:        busy,
		Messages:    msgs,
		Suggestions: suggestions,
	}
}

// NewMessage converts a folio.Message.
func NewMessage(m folio.Message) Message {
	return Message{
		Role:      string(m.Role),
		Content:   m.Content,
		Thinking:  m.Thinking,
		Timestamp: m.Timestamp,
	}
}

// MarshalSession serializes a session snapshot in v1 envelope format.
func MarshalSession(s folio.Session, busy bool) ([]byte, error) {
	return json.MarshalIndent(NewSession(s, busy), "", "  ")
}

// Turn is the response to a posted chat message.
type Turn struct {
	Reply   Message `json:"reply"`
	Session Session `json:"session"`
}

// SendRequest is the body of a chat message post.
type SendRequest struct {
	Text string `json:"text" binding:"required"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Error string `json:"error"`
}
