package websocket

import (
	"context"

	"chatroom/internal/events"
)

// RedisBridge relays broker messages into the local hub.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

// Run blocks until ctx is done or the subscription fails.
func (b *RedisBridge) Run(ctx context.Context) error {
	return b.subscriber.Subscribe(ctx, events.TopicPatterns, func(channel string, payload []byte) {
		b.hub.Broadcast(channel, payload)
	})
}
