package folio

import "time"

// Message is a single conversation entry. Messages are values: once appended
// to a Session they are never mutated.
type Message struct {
	Role      Role
	Content   string
	Thinking  string // optional reasoning trace returned with a model reply
	Timestamp time.Time
}

// UserMessage creates a user Message stamped with the current time.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: time.Now()}
}

// ModelMessage creates a model Message stamped with the current time.
func ModelMessage(content string) Message {
	return Message{Role: RoleModel, Content: content, Timestamp: time.Now()}
}

// Reply is a model answer as returned by Studio.Chat.
type Reply struct {
	Text     string
	Thinking string
}

// Message converts the reply into a model Message.
func (r Reply) Message() Message {
	m := ModelMessage(r.Text)
	m.Thinking = r.Thinking
	return m
}
