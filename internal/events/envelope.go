package events

import (
	"encoding/json"
)

// Frame types exchanged over the websocket gateway.
const (
	FrameSubscribe   = "subscribe"
	FrameUnsubscribe = "unsubscribe"
	FrameSend        = "send"
	FrameMessage     = "message"
	FrameError       = "error"
)

// Envelope is the JSON frame carried on a websocket connection in both directions.
type Envelope struct {
	Type        string          `json:"type"`
	Topic       string          `json:"topic,omitempty"`
	Destination string          `json:"destination,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// NewMessageEnvelope wraps an already encoded payload for delivery on topic.
func NewMessageEnvelope(topic string, payload []byte) Envelope {
	return Envelope{Type: FrameMessage, Topic: topic, Payload: json.RawMessage(payload)}
}

func NewErrorEnvelope(destination string, err error) Envelope {
	return Envelope{Type: FrameError, Destination: destination, Error: err.Error()}
}
