package redis

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

var errSubscriptionClosed = errors.New("redis subscription closed")

// Subscriber is the receiving side of Publisher; channel names handed to the
// handler have the prefix stripped again.
type Subscriber struct {
	client *redis.Client
	prefix string
}

func NewSubscriber(client *redis.Client, prefix string) *Subscriber {
	return &Subscriber{client: client, prefix: prefix}
}

// Subscribe pattern-subscribes to channels and calls handler for every message
// until ctx is cancelled or the subscription is closed.
func (s *Subscriber) Subscribe(ctx context.Context, channels []string, handler func(channel string, payload []byte)) error {
	patterns := make([]string, len(channels))
	for i, ch := range channels {
		patterns[i] = s.prefix + ch
	}

	sub := s.client.PSubscribe(ctx, patterns...)
	defer sub.Close()

	// Block until the subscription is confirmed.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errSubscriptionClosed
			}
			handler(strings.TrimPrefix(msg.Channel, s.prefix), []byte(msg.Payload))
		}
	}
}
