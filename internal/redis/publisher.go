package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Publisher publishes to Redis channels named {prefix}{topic}.
type Publisher struct {
	client *redis.Client
	prefix string
}

func NewPublisher(client *redis.Client, prefix string) *Publisher {
	return &Publisher{client: client, prefix: prefix}
}

func (p *Publisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, p.prefix+channel, payload).Err()
}
