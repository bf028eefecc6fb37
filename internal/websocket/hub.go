package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"chatroom/internal/events"
)

type hubOpKind int

const (
	opRegister hubOpKind = iota
	opUnregister
	opSubscribe
	opUnsubscribe
)

// hubOp is a queued change to the hub's membership. All ops go through one
// channel so a client's register, subscribe and unregister apply in order.
type hubOp struct {
	kind    hubOpKind
	client  *Client
	channel string
	applied chan struct{}
}

// Hub manages WebSocket client connections and topic subscriptions
type Hub struct {
	mu sync.RWMutex

	// clients maps client ID to client (for cleanup)
	clients map[string]*Client

	// channels maps topic name to set of clients subscribed to it
	channels map[string]map[*Client]struct{}

	ops chan hubOp

	// done is closed when Run returns.
	done chan struct{}
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		channels: make(map[string]map[*Client]struct{}),
		ops:      make(chan hubOp, 1024),
		done:     make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-h.ops:
			switch op.kind {
			case opRegister:
				h.addClient(op.client)
			case opUnregister:
				h.removeClient(op.client)
			case opSubscribe:
				h.subscribeToChannel(op.client, op.channel)
			case opUnsubscribe:
				h.unsubscribeFromChannel(op.client, op.channel)
			}
			if op.applied != nil {
				close(op.applied)
			}
		}
	}
}

// Register adds a new client to the hub
func (h *Hub) Register(client *Client) {
	h.enqueue(hubOp{kind: opRegister, client: client})
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.enqueue(hubOp{kind: opUnregister, client: client})
}

// Subscribe subscribes a client to a topic. It returns once the subscription
// is in place, so a broadcast issued afterwards reaches the client.
func (h *Hub) Subscribe(client *Client, channel string) {
	h.apply(hubOp{kind: opSubscribe, client: client, channel: channel})
}

// Unsubscribe unsubscribes a client from a topic and waits until it is applied.
func (h *Hub) Unsubscribe(client *Client, channel string) {
	h.apply(hubOp{kind: opUnsubscribe, client: client, channel: channel})
}

// enqueue hands op to Run. Once Run has returned, ops are dropped.
func (h *Hub) enqueue(op hubOp) bool {
	select {
	case h.ops <- op:
		return true
	case <-h.done:
		return false
	}
}

// apply enqueues op and blocks until Run has processed it or stopped.
func (h *Hub) apply(op hubOp) {
	op.applied = make(chan struct{})
	if !h.enqueue(op) {
		return
	}
	select {
	case <-op.applied:
	case <-h.done:
	}
}

// Broadcast wraps an encoded payload in a message frame and queues it for
// every client subscribed to channel.
func (h *Hub) Broadcast(channel string, payload []byte) {
	frame, err := json.Marshal(events.NewMessageEnvelope(channel, payload))
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := h.channels[channel]
	for c := range clients {
		c.SendMessage(frame)
	}
	h.mu.RUnlock()
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetChannelSubscriberCount returns the number of subscribers for a topic
func (h *Hub) GetChannelSubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
}

// removeClient removes a client and all its subscriptions, then closes its
// send channel.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for _, channel := range client.GetChannels() {
		if subscribers, ok := h.channels[channel]; ok {
			delete(subscribers, client)
			if len(subscribers) == 0 {
				delete(h.channels, channel)
			}
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)
}

func (h *Hub) subscribeToChannel(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Unknown clients have already been removed; their send channel is closed.
	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]struct{})
	}
	h.channels[channel][client] = struct{}{}

	client.Subscribe(channel)
}

func (h *Hub) unsubscribeFromChannel(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subscribers, ok := h.channels[channel]; ok {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.channels, channel)
		}
	}

	client.Unsubscribe(channel)
}
