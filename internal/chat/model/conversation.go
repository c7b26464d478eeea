package model

import "github.com/google/uuid"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the transcript handed to the assistant for one request.
// It is never stored.
type Conversation struct {
	ID       uuid.UUID `json:"id"`
	Messages []Message `json:"messages"`
}

func NewConversation(messages ...Message) *Conversation {
	return &Conversation{ID: uuid.New(), Messages: messages}
}
