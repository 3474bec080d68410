package storage

import (
	"context"

	"github.com/poiesic/supportai/core"
)

// MessageRepository stores the chat messages exchanged with the assistant.
// Implementations must be thread-safe and support concurrent access.
type MessageRepository interface {
	// AddMessages adds one or more messages to storage.
	// Messages are validated first; any invalid message fails the whole batch.
	// For messages with ID=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the messages with generated IDs and timestamps populated.
	AddMessages(ctx context.Context, messages ...*core.ChatMessage) ([]*core.ChatMessage, error)

	// GetMessage retrieves a single message by ID.
	// Returns ErrNotFound if the message doesn't exist.
	GetMessage(ctx context.Context, id core.ID) (*core.ChatMessage, error)

	// GetUserMessages retrieves the most recent messages for a user.
	// Returns up to limit messages ordered oldest to newest.
	// A limit of 0 or less returns the whole conversation.
	GetUserMessages(ctx context.Context, userID string, limit int) ([]*core.ChatMessage, error)

	// DeleteMessages removes messages by their IDs, along with their indices.
	// Returns ErrNotFound if any message doesn't exist.
	DeleteMessages(ctx context.Context, ids ...core.ID) error

	// Close closes the storage backend and releases resources.
	Close() error
}
