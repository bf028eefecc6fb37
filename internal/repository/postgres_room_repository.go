package repository

import (
	"context"
	"errors"

	"chatroom/internal/domain"
	chatroom_errors "chatroom/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRoomRepository stores a room per row with its messages in a jsonb column.
type PostgresRoomRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRoomRepository(pool *pgxpool.Pool) *PostgresRoomRepository {
	return &PostgresRoomRepository{pool: pool}
}

func (r *PostgresRoomRepository) GetByID(ctx context.Context, roomID string) (domain.Room, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT jsonb_build_object('roomId', room_id, 'messages', messages) FROM rooms WHERE room_id = $1`,
		roomID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Room{}, chatroom_errors.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, err
	}
	return decodeRoom(data)
}

func (r *PostgresRoomRepository) Upsert(ctx context.Context, room domain.Room) error {
	if room.Messages == nil {
		room.Messages = []domain.Message{}
	}
	messages, err := encodeMessages(room.Messages)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO rooms (room_id, messages, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (room_id) DO UPDATE SET messages = EXCLUDED.messages, updated_at = now()`,
		room.RoomID, string(messages),
	)
	return err
}

func (r *PostgresRoomRepository) Delete(ctx context.Context, roomID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE room_id = $1`, roomID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return chatroom_errors.ErrRoomNotFound
	}
	return nil
}

func (r *PostgresRoomRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
