package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const roomsTable = `CREATE TABLE IF NOT EXISTS rooms (
	room_id    VARCHAR(50) PRIMARY KEY,
	messages   JSONB       NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// InitSchema creates the rooms table when it does not exist yet.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, roomsTable); err != nil {
		return fmt.Errorf("failed to create rooms table: %w", err)
	}
	return nil
}
