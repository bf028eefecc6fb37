package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chatroom/internal/domain"
	chatroom_errors "chatroom/pkg/errors"

	goredis "github.com/redis/go-redis/v9"
)

// RedisRoomRepository stores each room as a JSON document under {prefix}room:{room_id}.
type RedisRoomRepository struct {
	client *goredis.Client
	prefix string
}

func NewRedisRoomRepository(client *goredis.Client, prefix string) *RedisRoomRepository {
	return &RedisRoomRepository{client: client, prefix: prefix}
}

func (r *RedisRoomRepository) key(roomID string) string {
	return fmt.Sprintf("%sroom:%s", r.prefix, roomID)
}

func (r *RedisRoomRepository) GetByID(ctx context.Context, roomID string) (domain.Room, error) {
	data, err := r.client.Get(ctx, r.key(roomID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.Room{}, chatroom_errors.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, err
	}
	return decodeRoom(data)
}

func (r *RedisRoomRepository) Upsert(ctx context.Context, room domain.Room) error {
	data, err := encodeRoom(room)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(room.RoomID), data, 0).Err()
}

func (r *RedisRoomRepository) Delete(ctx context.Context, roomID string) error {
	removed, err := r.client.Del(ctx, r.key(roomID)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return chatroom_errors.ErrRoomNotFound
	}
	return nil
}

func (r *RedisRoomRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func encodeRoom(room domain.Room) ([]byte, error) {
	if room.Messages == nil {
		room.Messages = []domain.Message{}
	}
	data, err := json.Marshal(room)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal room %s: %w", room.RoomID, err)
	}
	return data, nil
}

func decodeRoom(data []byte) (domain.Room, error) {
	var room domain.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return domain.Room{}, fmt.Errorf("failed to unmarshal room: %w", err)
	}
	if room.Messages == nil {
		room.Messages = []domain.Message{}
	}
	return room, nil
}
