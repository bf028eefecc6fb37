package repository

import (
	"context"

	"chatroom/internal/domain"
)

// RoomRepository is the document store holding one document per room.
// Implementations return chatroom_errors.ErrRoomNotFound for absent rooms.
type RoomRepository interface {
	GetByID(ctx context.Context, roomID string) (domain.Room, error)
	// Upsert replaces the whole room document.
	Upsert(ctx context.Context, room domain.Room) error
	Delete(ctx context.Context, roomID string) error
}

// HealthChecker is implemented by repositories backed by a remote service.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
