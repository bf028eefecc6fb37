package repository

import (
	"context"
	"sync"

	"chatroom/internal/domain"
	chatroom_errors "chatroom/pkg/errors"
)

type MemoryRoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]domain.Room
}

func NewMemoryRoomRepository() *MemoryRoomRepository {
	return &MemoryRoomRepository{rooms: make(map[string]domain.Room)}
}

func (r *MemoryRoomRepository) GetByID(ctx context.Context, roomID string) (domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return domain.Room{}, chatroom_errors.ErrRoomNotFound
	}
	return cloneRoom(room), nil
}

func (r *MemoryRoomRepository) Upsert(ctx context.Context, room domain.Room) error {
	r.mu.Lock()
	r.rooms[room.RoomID] = cloneRoom(room)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRoomRepository) Delete(ctx context.Context, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[roomID]; !ok {
		return chatroom_errors.ErrRoomNotFound
	}
	delete(r.rooms, roomID)
	return nil
}

func cloneRoom(room domain.Room) domain.Room {
	messages := make([]domain.Message, len(room.Messages))
	copy(messages, room.Messages)
	return domain.Room{RoomID: room.RoomID, Messages: messages}
}
