package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"chatroom/internal/commands"
	"chatroom/internal/domain"
	"chatroom/internal/events"
	chatroom_errors "chatroom/pkg/errors"
)

// ChatHandler turns frames sent to application destinations into commands
// and runs them on the bus.
type ChatHandler struct {
	bus *commands.Bus
}

func NewChatHandler(bus *commands.Bus) *ChatHandler {
	return &ChatHandler{bus: bus}
}

func (h *ChatHandler) HandleInbound(ctx context.Context, destination string, payload json.RawMessage) error {
	prefix, roomID, ok := events.ParseDestination(destination)
	if !ok {
		return fmt.Errorf("%w: unknown destination %q", chatroom_errors.ErrInvalidArgument, destination)
	}

	cmd, err := decodeCommand(prefix, roomID, payload)
	if err != nil {
		return err
	}
	_, err = h.bus.Execute(ctx, cmd)
	return err
}

func decodeCommand(prefix, roomID string, payload json.RawMessage) (commands.Command, error) {
	switch prefix {
	case events.DestinationSendMessage:
		var cmd commands.SendMessageCommand
		if err := decodePayload(payload, &cmd); err != nil {
			return nil, err
		}
		// The destination names the room; the payload's roomId is informational.
		cmd.RoomID = roomID
		return cmd, nil
	case events.DestinationTyping:
		var indicator domain.TypingIndicator
		if err := decodePayload(payload, &indicator); err != nil {
			return nil, err
		}
		return commands.TypingCommand{RoomID: roomID, Indicator: indicator}, nil
	case events.DestinationJoin, events.DestinationLeave:
		cmd := commands.PresenceCommand{Type: commands.TypeJoin}
		if prefix == events.DestinationLeave {
			cmd.Type = commands.TypeLeave
		}
		if err := decodePayload(payload, &cmd); err != nil {
			return nil, err
		}
		cmd.RoomID = roomID
		return cmd, nil
	}
	return nil, fmt.Errorf("%w: unknown destination prefix %q", chatroom_errors.ErrInvalidArgument, prefix)
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %s", chatroom_errors.ErrInvalidArgument, err.Error())
	}
	return nil
}
