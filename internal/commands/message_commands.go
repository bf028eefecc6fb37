package commands

import (
	"fmt"

	"chatroom/internal/domain"
	chatroom_errors "chatroom/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	TypeSendMessage = "message.send"
	TypeTyping      = "message.typing"
	TypeJoin        = "presence.join"
	TypeLeave       = "presence.leave"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", chatroom_errors.ErrInvalidArgument, err.Error())
	}
	return nil
}

// SendMessageCommand is the payload of a send-message/{roomId} frame.
type SendMessageCommand struct {
	RoomID  string `json:"roomId" validate:"required,notblank,max=50"`
	Sender  string `json:"sender" validate:"required,notblank,max=30"`
	Content string `json:"content" validate:"required,notblank,max=2000"`
}

func (c SendMessageCommand) CommandType() string {
	return TypeSendMessage
}

func (c SendMessageCommand) Validate() error {
	return validateStruct(c)
}

// TypingCommand relays an indicator untouched.
type TypingCommand struct {
	RoomID    string
	Indicator domain.TypingIndicator
}

func (c TypingCommand) CommandType() string {
	return TypeTyping
}

func (c TypingCommand) Validate() error {
	return nil
}

// PresenceCommand announces a join or leave. Join and leave share the payload
// and differ only in Type.
type PresenceCommand struct {
	Type   string `json:"-"`
	RoomID string `json:"roomId"`
	Sender string `json:"sender" validate:"max=30"`
}

func (c PresenceCommand) CommandType() string {
	return c.Type
}

func (c PresenceCommand) Validate() error {
	if c.Type != TypeJoin && c.Type != TypeLeave {
		return fmt.Errorf("%w: unknown presence type %q", chatroom_errors.ErrInvalidArgument, c.Type)
	}
	return validateStruct(c)
}
