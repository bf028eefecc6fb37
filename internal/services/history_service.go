package services

import (
	"context"
	"fmt"

	"chatroom/internal/domain"
	"chatroom/internal/repository"
	chatroom_errors "chatroom/pkg/errors"
)

// HistoryService pages through a room's stored messages, newest block first.
type HistoryService struct {
	repo repository.RoomRepository
}

func NewHistoryService(repo repository.RoomRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// GetPage returns page (0 = most recent) of at most size messages, oldest
// to newest within the page. Pages are cut from a single read of the room, so
// one call never mixes two versions of the history.
func (s *HistoryService) GetPage(ctx context.Context, roomID string, page, size int) ([]domain.Message, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: page must not be negative", chatroom_errors.ErrInvalidArgument)
	}
	if size <= 0 || size > domain.MaxPageSize {
		return nil, fmt.Errorf("%w: size must be between 1 and %d", chatroom_errors.ErrInvalidArgument, domain.MaxPageSize)
	}

	id, err := NormalizeRoomID(roomID)
	if err != nil {
		return nil, err
	}

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load room %s: %w", id, err)
	}
	return Paginate(room.Messages, page, size), nil
}

// Paginate slices messages into reverse-chronological blocks of size.
// Out-of-range pages yield an empty, non-nil slice.
func Paginate(messages []domain.Message, page, size int) []domain.Message {
	total := len(messages)
	if total == 0 || page > total/size {
		return []domain.Message{}
	}
	start := max(0, total-(page+1)*size)
	end := min(total, total-page*size)
	if start >= end {
		return []domain.Message{}
	}
	out := make([]domain.Message, end-start)
	copy(out, messages[start:end])
	return out
}
