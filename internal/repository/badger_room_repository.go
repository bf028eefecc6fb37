package repository

import (
	"context"
	"errors"

	"chatroom/internal/domain"
	chatroom_errors "chatroom/pkg/errors"

	"github.com/dgraph-io/badger/v4"
)

// BadgerRoomRepository keeps room documents in an embedded Badger database,
// one key per room: "room:{room_id}".
type BadgerRoomRepository struct {
	db *badger.DB
}

func NewBadgerRoomRepository(db *badger.DB) *BadgerRoomRepository {
	return &BadgerRoomRepository{db: db}
}

// OpenBadger opens (or creates) a Badger database at path with error-level logging.
func OpenBadger(path string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
}

func badgerKey(roomID string) []byte {
	return []byte("room:" + roomID)
}

func (r *BadgerRoomRepository) GetByID(ctx context.Context, roomID string) (domain.Room, error) {
	var room domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(roomID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return chatroom_errors.ErrRoomNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			decoded, err := decodeRoom(value)
			if err != nil {
				return err
			}
			room = decoded
			return nil
		})
	})
	if err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (r *BadgerRoomRepository) Upsert(ctx context.Context, room domain.Room) error {
	data, err := encodeRoom(room)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(room.RoomID), data)
	})
}

func (r *BadgerRoomRepository) Delete(ctx context.Context, roomID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := badgerKey(roomID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return chatroom_errors.ErrRoomNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

func (r *BadgerRoomRepository) Ping(ctx context.Context) error {
	if r.db.IsClosed() {
		return chatroom_errors.ErrServiceUnavailable
	}
	return nil
}
