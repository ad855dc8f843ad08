package chat

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidRole is returned when a message is built with an unknown role.
var ErrInvalidRole = errors.New("invalid message role")

// Role tags who authored a transcript turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole validates raw against the known roles.
func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleSystem, RoleUser, RoleAssistant:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
}

func (r Role) String() string {
	return string(r)
}

// Message is a single conversational turn. The zero value is not a valid
// message; use NewMessage or one of the role helpers.
type Message struct {
	role    Role
	content string
}

// NewMessage builds a message after checking the role.
func NewMessage(role Role, content string) (Message, error) {
	if _, err := ParseRole(string(role)); err != nil {
		return Message{}, err
	}
	return Message{role: role, content: content}, nil
}

// SystemMessage returns an instruction turn.
func SystemMessage(content string) Message {
	return Message{role: RoleSystem, content: content}
}

// UserMessage returns a user turn.
func UserMessage(content string) Message {
	return Message{role: RoleUser, content: content}
}

// AssistantMessage returns a model reply turn.
func AssistantMessage(content string) Message {
	return Message{role: RoleAssistant, content: content}
}

func (m Message) Role() Role {
	return m.role
}

func (m Message) Content() string {
	return m.content
}

type messageJSON struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// MarshalJSON emits {"role": ..., "content": ...} for logs and debugging.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{Role: m.role, Content: m.content})
}
