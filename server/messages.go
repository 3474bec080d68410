package server

import (
	"encoding/json"
	"time"

	"github.com/poiesic/supportai/core"
)

// Socket event names.
const (
	EventPrompt   = "ai:prompt"
	EventResponse = "ai:response"
	EventError    = "ai:error"
)

// Envelope frames every socket message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// PromptRequest is the body of an ai:prompt event and of POST /api/ai/prompt.
type PromptRequest struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

// ResponsePayload carries a generated answer.
type ResponsePayload struct {
	Message string `json:"message"`
}

// ErrorPayload carries a user-visible failure.
type ErrorPayload struct {
	Error string `json:"error"`
}

// MessageView is the JSON form of a stored chat message.
type MessageView struct {
	ID        uint64            `json:"id"`
	UserID    string            `json:"userId"`
	Speaker   string            `json:"speaker"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// HistoryResponse is returned by GET /api/users/:userId/messages.
type HistoryResponse struct {
	Messages []MessageView `json:"messages"`
}

func newMessageView(msg *core.ChatMessage) MessageView {
	return MessageView{
		ID:        uint64(msg.Id),
		UserID:    msg.UserID,
		Speaker:   msg.Speaker.String(),
		Content:   msg.Contents,
		Timestamp: msg.Timestamp,
		Metadata:  msg.Metadata,
	}
}
