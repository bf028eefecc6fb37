package commands

import (
	"context"
	"strings"
	"testing"

	chatroom_errors "chatroom/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_ExecuteRoutesByType(t *testing.T) {
	bus := NewBus()
	var got Command
	bus.Register(TypeSendMessage, HandlerFunc(func(ctx context.Context, cmd Command) (Result, error) {
		got = cmd
		return Result{AggregateID: "general"}, nil
	}))

	cmd := SendMessageCommand{RoomID: "general", Sender: "Alice", Content: "hi"}
	res, err := bus.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "general", res.AggregateID)
	assert.Equal(t, cmd, got)
}

func TestBus_UnknownCommand(t *testing.T) {
	_, err := NewBus().Execute(context.Background(), TypingCommand{RoomID: "general"})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}

func TestBus_InvalidCommandNeverReachesHandler(t *testing.T) {
	bus := NewBus()
	called := false
	bus.Register(TypeSendMessage, HandlerFunc(func(ctx context.Context, cmd Command) (Result, error) {
		called = true
		return Result{}, nil
	}))

	_, err := bus.Execute(context.Background(), SendMessageCommand{RoomID: "general", Sender: "Alice", Content: "   "})
	assert.ErrorIs(t, err, chatroom_errors.ErrInvalidArgument)
	assert.False(t, called)
}

func TestSendMessageCommand_Validate(t *testing.T) {
	valid := SendMessageCommand{RoomID: "general", Sender: "Alice", Content: "hi"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cmd  SendMessageCommand
	}{
		{"missing sender", SendMessageCommand{RoomID: "general", Content: "hi"}},
		{"blank sender", SendMessageCommand{RoomID: "general", Sender: " ", Content: "hi"}},
		{"long sender", SendMessageCommand{RoomID: "general", Sender: strings.Repeat("a", 31), Content: "hi"}},
		{"missing content", SendMessageCommand{RoomID: "general", Sender: "Alice"}},
		{"long content", SendMessageCommand{RoomID: "general", Sender: "Alice", Content: strings.Repeat("a", 2001)}},
		{"missing room", SendMessageCommand{Sender: "Alice", Content: "hi"}},
		{"long room", SendMessageCommand{RoomID: strings.Repeat("r", 51), Sender: "Alice", Content: "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cmd.Validate(), chatroom_errors.ErrInvalidArgument)
		})
	}

	edge := SendMessageCommand{RoomID: "general", Sender: strings.Repeat("a", 30), Content: strings.Repeat("a", 2000)}
	assert.NoError(t, edge.Validate())
}

func TestPresenceCommand_Validate(t *testing.T) {
	assert.NoError(t, PresenceCommand{Type: TypeJoin, RoomID: "general", Sender: "Bob"}.Validate())
	assert.NoError(t, PresenceCommand{Type: TypeLeave, RoomID: "general"}.Validate())
	assert.ErrorIs(t, PresenceCommand{Type: "presence.wave", RoomID: "general"}.Validate(), chatroom_errors.ErrInvalidArgument)
	assert.ErrorIs(t, PresenceCommand{Type: TypeJoin, Sender: strings.Repeat("b", 31)}.Validate(), chatroom_errors.ErrInvalidArgument)
}
