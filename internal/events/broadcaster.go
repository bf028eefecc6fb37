package events

import (
	"context"
	"encoding/json"
	"fmt"
)

// Broadcaster delivers a payload to every current subscriber of a topic.
// There is no persistence, replay or delivery guarantee.
type Broadcaster interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Publisher pushes raw bytes to a broker channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Subscriber listens on broker channel patterns until ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, channels []string, handler func(channel string, payload []byte)) error
}

// BrokerBroadcaster JSON-encodes payloads and hands them to a Publisher.
type BrokerBroadcaster struct {
	publisher Publisher
}

func NewBrokerBroadcaster(publisher Publisher) *BrokerBroadcaster {
	return &BrokerBroadcaster{publisher: publisher}
}

func (b *BrokerBroadcaster) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}
	if err := b.publisher.Publish(ctx, topic, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}
