package chatroom_errors

import (
	"errors"
)

// Common errors
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrRoomNotFound       = errors.New("room not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrServiceUnavailable = errors.New("service unavailable")
)
