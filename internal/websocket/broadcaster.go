package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

// LocalBroadcaster publishes straight into the in-process hub. Used when no
// broker is configured.
type LocalBroadcaster struct {
	hub *Hub
}

func NewLocalBroadcaster(hub *Hub) *LocalBroadcaster {
	return &LocalBroadcaster{hub: hub}
}

func (b *LocalBroadcaster) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}
	b.hub.Broadcast(topic, data)
	return nil
}
