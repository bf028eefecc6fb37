package services

import (
	"context"
	"errors"
	"fmt"

	"chatroom/internal/domain"
	"chatroom/internal/repository"
	chatroom_errors "chatroom/pkg/errors"
	"chatroom/pkg/logger"
)

// Archiver keeps a copy of a room before it is deleted.
type Archiver interface {
	Archive(ctx context.Context, room domain.Room) error
}

type RoomService struct {
	repo     repository.RoomRepository
	locks    *RoomLocker
	archiver Archiver
	logger   *logger.Logger
}

// NewRoomService builds the room lifecycle service. archiver may be nil.
func NewRoomService(repo repository.RoomRepository, locks *RoomLocker, archiver Archiver, l *logger.Logger) *RoomService {
	return &RoomService{repo: repo, locks: locks, archiver: archiver, logger: l}
}

// CreateRoom persists a new empty room. It fails with ErrAlreadyExists when
// the trimmed id is taken.
func (s *RoomService) CreateRoom(ctx context.Context, roomID string) (domain.Room, error) {
	id, err := NormalizeRoomID(roomID)
	if err != nil {
		return domain.Room{}, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	_, err = s.repo.GetByID(ctx, id)
	if err == nil {
		return domain.Room{}, fmt.Errorf("room %s: %w", id, chatroom_errors.ErrAlreadyExists)
	}
	if !errors.Is(err, chatroom_errors.ErrRoomNotFound) {
		return domain.Room{}, fmt.Errorf("failed to load room %s: %w", id, err)
	}

	room := domain.NewRoom(id)
	if err := s.repo.Upsert(ctx, room); err != nil {
		return domain.Room{}, fmt.Errorf("failed to save room %s: %w", id, err)
	}
	s.logger.WithContext(ctx).Infof("room %s created", id)
	return room, nil
}

// JoinRoom returns the room, creating it first when it does not exist.
func (s *RoomService) JoinRoom(ctx context.Context, roomID string) (domain.Room, error) {
	id, err := NormalizeRoomID(roomID)
	if err != nil {
		return domain.Room{}, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	room, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, chatroom_errors.ErrRoomNotFound) {
		return domain.Room{}, fmt.Errorf("failed to load room %s: %w", id, err)
	}

	room = domain.NewRoom(id)
	if err := s.repo.Upsert(ctx, room); err != nil {
		return domain.Room{}, fmt.Errorf("failed to save room %s: %w", id, err)
	}
	s.logger.WithContext(ctx).Infof("room %s created on join", id)
	return room, nil
}

// DeleteRoom removes the room and its messages. With an archiver configured
// the room is archived first and a failed archive keeps the room in place.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID string) error {
	id, err := NormalizeRoomID(roomID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, chatroom_errors.ErrRoomNotFound) {
			return fmt.Errorf("room %s: %w", id, err)
		}
		return fmt.Errorf("failed to load room %s: %w", id, err)
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, room); err != nil {
			return fmt.Errorf("failed to archive room %s: %w", id, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, chatroom_errors.ErrRoomNotFound) {
			return fmt.Errorf("room %s: %w", id, err)
		}
		return fmt.Errorf("failed to delete room %s: %w", id, err)
	}
	s.logger.WithContext(ctx).Infof("room %s deleted with %d messages", id, room.MessageCount())
	return nil
}
