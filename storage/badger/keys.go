package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/supportai/core"
)

// Key prefixes for different data types
const (
	chatMessagePrefix     = "chamsg"
	chatMessageUserPrefix = "chamsgu"
	chatMessageIDSeq      = "chamsgseq"
)

// makeMessageKey generates a key for a chat message by ID.
func makeMessageKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chatMessagePrefix, id))
}

// makeUserPrefix generates the index prefix shared by all of a user's messages.
// Format: prefix:userHash
func makeUserPrefix(userID string) []byte {
	prefix := chatMessageUserPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(userID)))
	return buf
}

// makeUserIndexKey generates a composite key for the per-user timeline index.
// Format: prefix:userHash:timestamp:id
func makeUserIndexKey(userID string, timestamp time.Time, id core.ID) []byte {
	prefix := makeUserPrefix(userID)
	buf := make([]byte, len(prefix)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeUserSeekKey returns a key that sorts after every index key for userID.
// Used to start reverse iteration at the newest message.
func makeUserSeekKey(userID string) []byte {
	prefix := makeUserPrefix(userID)
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	for i := offset; i < len(buf); i++ {
		buf[i] = 0xFF
	}
	return buf
}
