package badger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/supportai/core"
	"github.com/poiesic/supportai/storage"
)

// MessageRepository implements storage.MessageRepository for BadgerDB.
type MessageRepository struct {
	backend     *Backend
	idSeq       *badger.Sequence
	ownsBackend bool
}

var _ storage.MessageRepository = (*MessageRepository)(nil)

// NewMessageRepository creates a MessageRepository on an open backend.
// Closing the repository releases its sequence but leaves the backend open.
func NewMessageRepository(backend *Backend) (*MessageRepository, error) {
	idSeq, err := backend.GetSequence(chatMessageIDSeq)
	if err != nil {
		return nil, err
	}

	return &MessageRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// OpenMessageRepository opens the database at path and returns a repository
// that owns it. Closing the repository closes the database.
func OpenMessageRepository(path string) (storage.MessageRepository, error) {
	repo, err := openOwned(path, false)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func openOwned(path string, inMemory bool) (*MessageRepository, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := NewMessageRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	repo.ownsBackend = true
	return repo, nil
}

// Close releases the ID sequence, and the database if the repository owns it.
func (r *MessageRepository) Close() error {
	err := r.idSeq.Release()
	if r.ownsBackend {
		if closeErr := r.backend.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

// AddMessages adds one or more messages to storage.
func (r *MessageRepository) AddMessages(ctx context.Context, messages ...*core.ChatMessage) ([]*core.ChatMessage, error) {
	now := time.Now().UTC()
	for _, msg := range messages {
		if msg != nil && msg.Timestamp.IsZero() {
			msg.Timestamp = now
		}
		if err := core.ValidateChatMessage(msg); err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrInvalidMessage, err)
		}
	}

	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		for _, msg := range messages {
			if msg.Id == 0 {
				nextID, err := r.nextID()
				if err != nil {
					return err
				}
				msg.Id = nextID
			}

			if msg.InsertedAt.IsZero() {
				msg.InsertedAt = time.Now().UTC()
			}

			// Store primary record
			if err := tx.Set(makeMessageKey(msg.Id), storage.MarshalChatMessage(msg)); err != nil {
				return err
			}

			// Update user timeline index
			indexKey := makeUserIndexKey(msg.UserID, msg.Timestamp, msg.Id)
			if err := tx.Set(indexKey, storage.MarshalID(msg.Id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// GetMessage retrieves a single message by ID.
func (r *MessageRepository) GetMessage(ctx context.Context, id core.ID) (*core.ChatMessage, error) {
	var result *core.ChatMessage
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readMessage(tx, makeMessageKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	})
	return result, err
}

// GetUserMessages retrieves the most recent messages for a user, oldest first.
func (r *MessageRepository) GetUserMessages(ctx context.Context, userID string, limit int) ([]*core.ChatMessage, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", storage.ErrInvalidQuery)
	}

	var results []*core.ChatMessage
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		// Walk the user's timeline newest first
		prefix := makeUserPrefix(userID)
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makeUserSeekKey(userID)); iter.ValidForPrefix(prefix); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			// Read the ID from the index
			var msgID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				msgID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			msg, err := readMessage(tx, makeMessageKey(msgID))
			if err != nil {
				return err
			}
			// Hash prefixes can collide; the stored user id is authoritative
			if msg != nil && msg.UserID == userID {
				results = append(results, msg)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Reverse(results)
	return results, nil
}

// DeleteMessages removes messages by their IDs.
func (r *MessageRepository) DeleteMessages(ctx context.Context, ids ...core.ID) error {
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeMessageKey(id)

			// Read message to find its index entry
			msg, err := readMessage(tx, key)
			if err != nil {
				return err
			}
			if msg == nil {
				return fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
			}

			if err := tx.Delete(makeUserIndexKey(msg.UserID, msg.Timestamp, msg.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// nextID returns the next non-zero ID from the sequence.
func (r *MessageRepository) nextID() (core.ID, error) {
	nextID, err := r.idSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if nextID == 0 {
		nextID, err = r.idSeq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(nextID), nil
}

// readMessage reads a message by key. Returns nil without error if the key doesn't exist.
func readMessage(tx *badger.Txn, key []byte) (*core.ChatMessage, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var msg *core.ChatMessage
	err = item.Value(func(val []byte) error {
		var err error
		msg, err = storage.UnmarshalChatMessage(val)
		return err
	})
	return msg, err
}
