package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"chatroom/internal/events"
	"chatroom/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

var errUnknownFrame = errors.New("unknown frame type")
var errInvalidTopic = errors.New("invalid topic")

// InboundHandler processes a frame a client sent to an application destination.
type InboundHandler interface {
	HandleInbound(ctx context.Context, destination string, payload json.RawMessage) error
}

type Handler struct {
	hub            *Hub
	inbound        InboundHandler
	allowedOrigins []string
	logger         *logger.Logger
}

func NewHandler(hub *Hub, inbound InboundHandler, allowedOrigins []string, l *logger.Logger) *Handler {
	return &Handler{hub: hub, inbound: inbound, allowedOrigins: allowedOrigins, logger: l}
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || lo.Contains(h.allowedOrigins, "*") {
		return true
	}
	return lo.Contains(h.allowedOrigins, origin)
}

func (h *Handler) Connect(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: h.checkOrigin,
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, c.Request.RemoteAddr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = context.WithValue(ctx, logger.ClientIdKey, client.ID)

	h.hub.Register(client)
	go client.WriteLoop(ctx)
	h.logger.WithContext(ctx).Debugf("websocket client connected from %s", client.Remote)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		h.handleFrame(ctx, client, data)
	}

	h.hub.Unregister(client)
	h.logger.WithContext(ctx).Debugf("websocket client disconnected")
}

func (h *Handler) handleFrame(ctx context.Context, client *Client, data []byte) {
	var frame events.Envelope
	if err := json.Unmarshal(data, &frame); err != nil {
		h.reject(client, "", err)
		return
	}

	switch frame.Type {
	case events.FrameSubscribe:
		if !events.IsSubscribableTopic(frame.Topic) {
			h.reject(client, frame.Topic, errInvalidTopic)
			return
		}
		h.hub.Subscribe(client, frame.Topic)
	case events.FrameUnsubscribe:
		h.hub.Unsubscribe(client, frame.Topic)
	case events.FrameSend:
		if err := h.inbound.HandleInbound(ctx, frame.Destination, frame.Payload); err != nil {
			h.logger.WithContext(ctx).Warnf("inbound frame to %s rejected: %s", frame.Destination, err)
			h.reject(client, frame.Destination, err)
		}
	default:
		h.reject(client, frame.Destination, errUnknownFrame)
	}
}

func (h *Handler) reject(client *Client, destination string, err error) {
	data, mErr := json.Marshal(events.NewErrorEnvelope(destination, err))
	if mErr != nil {
		return
	}
	client.SendMessage(data)
}
