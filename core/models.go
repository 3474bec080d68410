package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContextPart is the plain-text snapshot of one harvested site page.
// Parts are never modified after the harvester creates them.
type ContextPart struct {
	URL  string
	Text string
}

// ScoredContextPart is a ContextPart annotated with its relevance to a query.
// Score counts the distinct query terms found in the page text.
type ScoredContextPart struct {
	ContextPart
	Score int
}

// PageResult is the outcome of fetching a single configured URL.
// Exactly one of Part and Err is set.
type PageResult struct {
	URL  string
	Part *ContextPart
	Err  error
}

// OK reports whether the page was fetched successfully.
func (r PageResult) OK() bool {
	return r.Err == nil && r.Part != nil
}

// SpeakerType identifies the source of a chat message.
type SpeakerType int

const (
	// SpeakerTypeHuman represents a shopper or agent typing into the chat.
	SpeakerTypeHuman SpeakerType = iota + 1
	// SpeakerTypeAI represents the assistant.
	SpeakerTypeAI
)

// String returns the wire name used in message payloads.
func (s SpeakerType) String() string {
	switch s {
	case SpeakerTypeHuman:
		return "human"
	case SpeakerTypeAI:
		return "ai"
	default:
		return "unknown"
	}
}

// ChatMessage is a single message in a user's support conversation.
type ChatMessage struct {
	Id         ID
	UserID     string
	Speaker    SpeakerType
	Contents   string
	Timestamp  time.Time         // When the message was originally sent
	InsertedAt time.Time         // When the message was inserted into the database
	Metadata   map[string]string // Optional metadata (e.g., "model", "cached")
}
