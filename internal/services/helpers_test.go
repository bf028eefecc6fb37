package services

import (
	"context"
	"errors"
	"sync"

	"chatroom/internal/domain"
	"chatroom/internal/repository"
)

type published struct {
	Topic   string
	Payload any
}

// recordingBroadcaster keeps every publish in order.
type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (b *recordingBroadcaster) Publish(ctx context.Context, topic string, payload any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.sent = append(b.sent, published{Topic: topic, Payload: payload})
	return nil
}

func (b *recordingBroadcaster) messages() []published {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]published, len(b.sent))
	copy(out, b.sent)
	return out
}

var errStoreDown = errors.New("store down")

// failingUpsertRepository reads through to an in-memory store but refuses writes.
type failingUpsertRepository struct {
	repository.RoomRepository
}

func (r failingUpsertRepository) Upsert(ctx context.Context, room domain.Room) error {
	return errStoreDown
}

type recordingArchiver struct {
	archived []domain.Room
	err      error
}

func (a *recordingArchiver) Archive(ctx context.Context, room domain.Room) error {
	if a.err != nil {
		return a.err
	}
	a.archived = append(a.archived, room)
	return nil
}
