package storage

import (
	"testing"
	"time"

	"github.com/poiesic/supportai/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalChatMessage(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		msg  *core.ChatMessage
	}{
		{
			name: "human prompt",
			msg: &core.ChatMessage{
				Id:         core.ID(1),
				UserID:     "user-1",
				Speaker:    core.SpeakerTypeHuman,
				Contents:   "Do you ship to Canada?",
				Timestamp:  now,
				InsertedAt: now,
			},
		},
		{
			name: "ai answer with metadata",
			msg: &core.ChatMessage{
				Id:         core.ID(2),
				UserID:     "user-1",
				Speaker:    core.SpeakerTypeAI,
				Contents:   "Yes, shipping to Canada costs $10.",
				Timestamp:  now,
				InsertedAt: now.Add(time.Millisecond),
				Metadata:   map[string]string{"model": "gemini-2.0-flash", "sources": "3"},
			},
		},
		{
			name: "unicode contents",
			msg: &core.ChatMessage{
				Id:         core.ID(3),
				UserID:     "usuario",
				Speaker:    core.SpeakerTypeHuman,
				Contents:   "¿Envían a México? 🚚",
				Timestamp:  now,
				InsertedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalChatMessage(tt.msg)
			decoded, err := UnmarshalChatMessage(data)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, decoded)
		})
	}
}

func TestUnmarshalChatMessage_Truncated(t *testing.T) {
	msg := &core.ChatMessage{
		Id:        core.ID(7),
		UserID:    "u",
		Speaker:   core.SpeakerTypeAI,
		Contents:  "answer",
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		Metadata:  map[string]string{"k": "v"},
	}
	data := MarshalChatMessage(msg)

	for _, cut := range []int{0, 1, len(data) / 2, len(data) - 1} {
		_, err := UnmarshalChatMessage(data[:cut])
		assert.ErrorIs(t, err, ErrSerializationFailed, "cut at %d", cut)
	}
}
