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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/supportai/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalChatMessage serializes a ChatMessage to bytes.
func MarshalChatMessage(msg *core.ChatMessage) []byte {
	buf := make([]byte, chatMessageSize(msg))
	marshalChatMessage(msg, buf)
	return buf
}

// UnmarshalChatMessage deserializes a ChatMessage from bytes.
func UnmarshalChatMessage(data []byte) (*core.ChatMessage, error) {
	msg, err := unmarshalChatMessage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return msg, nil
}

// Field order: id, user, speaker, contents, timestamp, inserted, metadata.
// Timestamps are stored as Unix microseconds.

func chatMessageSize(msg *core.ChatMessage) int {
	size := varint.Uint64.Size(uint64(msg.Id))
	size += ord.String.Size(msg.UserID)
	size += varint.Int.Size(int(msg.Speaker))
	size += ord.String.Size(msg.Contents)
	size += varint.Int64.Size(msg.Timestamp.UnixMicro())
	size += varint.Int64.Size(msg.InsertedAt.UnixMicro())
	size += varint.Int.Size(len(msg.Metadata))
	for k, v := range msg.Metadata {
		size += ord.String.Size(k) + ord.String.Size(v)
	}
	return size
}

func marshalChatMessage(msg *core.ChatMessage, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(msg.Id), bs)
	n += ord.String.Marshal(msg.UserID, bs[n:])
	n += varint.Int.Marshal(int(msg.Speaker), bs[n:])
	n += ord.String.Marshal(msg.Contents, bs[n:])
	n += varint.Int64.Marshal(msg.Timestamp.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(msg.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int.Marshal(len(msg.Metadata), bs[n:])
	for k, v := range msg.Metadata {
		n += ord.String.Marshal(k, bs[n:])
		n += ord.String.Marshal(v, bs[n:])
	}
	return n
}

func unmarshalChatMessage(bs []byte) (*core.ChatMessage, error) {
	var (
		msg core.ChatMessage
		n   int
	)

	id, m, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return nil, err
	}
	n += m
	msg.Id = core.ID(id)

	if msg.UserID, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return nil, err
	}
	n += m

	speaker, m, err := varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += m
	msg.Speaker = core.SpeakerType(speaker)

	if msg.Contents, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return nil, err
	}
	n += m

	ts, m, err := varint.Int64.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += m
	msg.Timestamp = time.UnixMicro(ts).UTC()

	inserted, m, err := varint.Int64.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += m
	msg.InsertedAt = time.UnixMicro(inserted).UTC()

	count, m, err := varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += m
	if count < 0 || count > len(bs)-n {
		return nil, ErrTruncatedData
	}

	if count > 0 {
		msg.Metadata = make(map[string]string, count)
		for i := 0; i < count; i++ {
			k, m, err := ord.String.Unmarshal(bs[n:])
			if err != nil {
				return nil, err
			}
			n += m
			v, m, err := ord.String.Unmarshal(bs[n:])
			if err != nil {
				return nil, err
			}
			n += m
			msg.Metadata[k] = v
		}
	}

	return &msg, nil
}
