package handler

import (
	"errors"
	"net/http"

	"chatroom/internal/transport/httpdto"
	chatroom_errors "chatroom/pkg/errors"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes. notFoundStatus lets
// each route decide how a missing room is reported.
func respondError(c *gin.Context, err error, notFoundStatus int) {
	switch {
	case errors.Is(err, chatroom_errors.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), httpdto.CodeInvalidArgument))
	case errors.Is(err, chatroom_errors.ErrRoomNotFound):
		c.JSON(notFoundStatus, httpdto.NewErrorResponse(err.Error(), httpdto.CodeRoomNotFound))
	case errors.Is(err, chatroom_errors.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(httpdto.RoomAlreadyExistsMessage, httpdto.CodeAlreadyExists))
	default:
		// Left for ErrorHandler, which logs and renders it.
		c.Status(http.StatusInternalServerError)
		_ = c.Error(err)
	}
}
