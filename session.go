package folio

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Session represents a conversation session. It lives in memory for the
// duration of a visit and is never persisted.
type Session struct {
	ID          string
	Messages    []Message
	Suggestions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession creates a session seeded with a single model greeting and the
// default follow-up suggestions.
func NewSession(greeting string) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.New().String(),
		Messages:    []Message{{Role: RoleModel, Content: greeting, Timestamp: now}},
		Suggestions: slices.Clone(DefaultSuggestions),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// LastExchange returns the content of the most recent user message and of the
// model message that follows it. ok is false when no complete exchange exists.
func (s *Session) LastExchange() (question, answer string, ok bool) {
	for i := len(s.Messages) - 1; i > 0; i-- {
		if s.Messages[i].Role == RoleModel && s.Messages[i-1].Role == RoleUser {
			return s.Messages[i-1].Content, s.Messages[i].Content, true
		}
	}
	return "", "", false
}

// Clone returns a deep copy safe to hand to other goroutines.
func (s *Session) Clone() Session {
	return Session{
		ID:          s.ID,
		Messages:    slices.Clone(s.Messages),
		Suggestions: slices.Clone(s.Suggestions),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
