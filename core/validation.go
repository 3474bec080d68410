// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateChatMessage validates a ChatMessage according to domain rules.
//
// Validation rules:
//   - Contents must not be blank
//   - UserID must not be blank
//   - SpeakerType must be valid (Human or AI)
//   - Timestamp must not be in the future
//
// NOT validated:
//   - ID (0 is valid until the repository assigns one)
//   - Metadata
func ValidateChatMessage(msg *ChatMessage) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidChatMessage)
	}

	if strings.TrimSpace(msg.Contents) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrEmptyContent)
	}

	if strings.TrimSpace(msg.UserID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrEmptyUserID)
	}

	if err := ValidateSpeakerType(msg.Speaker); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, err)
	}

	if !IsValidTimestamp(msg.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSpeakerType validates that a SpeakerType has a valid value.
func ValidateSpeakerType(speaker SpeakerType) error {
	if speaker != SpeakerTypeHuman && speaker != SpeakerTypeAI {
		return fmt.Errorf("%w: value %d", ErrInvalidSpeakerType, speaker)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
