package chat

import (
	"strings"
	"time"
)

// Role tags a message with its author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Chat is a conversation session. Title is empty until the first user
// message sets it.
type Chat struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one turn in a chat. The ID is caller-supplied and stable
// across upserts: re-sending the same id replaces the part set in place.
type Message struct {
	ID        string
	ChatID    string
	Role      Role
	Parts     Parts
	CreatedAt time.Time
}

// Text concatenates the message's text parts.
// Reasoning, sources and step markers are skipped.
func (m *Message) Text() string {
	var b strings.Builder
	for _, p := range m.Parts {
		if tp, ok := p.(TextPart); ok {
			b.WriteString(tp.Text)
		}
	}
	return b.String()
}
