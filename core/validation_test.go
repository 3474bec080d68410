package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateChatMessage(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		msg     *ChatMessage
		wantErr error
	}{
		{
			name: "valid message",
			msg: &ChatMessage{
				Id:        1,
				UserID:    "user-1",
				Speaker:   SpeakerTypeHuman,
				Contents:  "Where is my order?",
				Timestamp: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid AI message with metadata",
			msg: &ChatMessage{
				Id:        2,
				UserID:    "user-1",
				Speaker:   SpeakerTypeAI,
				Contents:  "Orders ship within two days.",
				Timestamp: validTime,
				Metadata:  map[string]string{"model": "gemini-2.0-flash"},
			},
			wantErr: nil,
		},
		{
			name: "valid message with ID 0",
			msg: &ChatMessage{
				UserID:    "user-1",
				Speaker:   SpeakerTypeHuman,
				Contents:  "Hi",
				Timestamp: validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil message",
			msg:     nil,
			wantErr: ErrInvalidChatMessage,
		},
		{
			name: "empty contents",
			msg: &ChatMessage{
				UserID:    "user-1",
				Speaker:   SpeakerTypeHuman,
				Contents:  "",
				Timestamp: validTime,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "whitespace contents",
			msg: &ChatMessage{
				UserID:    "user-1",
				Speaker:   SpeakerTypeHuman,
				Contents:  "  \n\t",
				Timestamp: validTime,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "empty user",
			msg: &ChatMessage{
				Speaker:   SpeakerTypeHuman,
				Contents:  "Hello",
				Timestamp: validTime,
			},
			wantErr: ErrEmptyUserID,
		},
		{
			name: "invalid speaker type",
			msg: &ChatMessage{
				UserID:    "user-1",
				Speaker:   SpeakerType(999),
				Contents:  "Hello",
				Timestamp: validTime,
			},
			wantErr: ErrInvalidSpeakerType,
		},
		{
			name: "future timestamp",
			msg: &ChatMessage{
				UserID:    "user-1",
				Speaker:   SpeakerTypeHuman,
				Contents:  "Hello",
				Timestamp: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChatMessage(tt.msg)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChatMessage() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateChatMessage() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChatMessage() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidChatMessage) {
				t.Errorf("ValidateChatMessage() error = %v, want wrapped %v", err, ErrInvalidChatMessage)
			}
		})
	}
}

func TestValidateSpeakerType(t *testing.T) {
	if err := ValidateSpeakerType(SpeakerTypeHuman); err != nil {
		t.Errorf("human speaker rejected: %v", err)
	}
	if err := ValidateSpeakerType(SpeakerTypeAI); err != nil {
		t.Errorf("ai speaker rejected: %v", err)
	}
	if err := ValidateSpeakerType(SpeakerType(0)); !errors.Is(err, ErrInvalidSpeakerType) {
		t.Errorf("zero speaker error = %v, want %v", err, ErrInvalidSpeakerType)
	}
}
