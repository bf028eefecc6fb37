package handler

import (
	"io"
	"net/http"

	"chatroom/internal/domain"
	"chatroom/internal/services"
	"chatroom/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	rooms   *services.RoomService
	history *services.HistoryService
}

func NewRoomHandler(rooms *services.RoomService, history *services.HistoryService) *RoomHandler {
	return &RoomHandler{rooms: rooms, history: history}
}

// maxRoomBodySize fits a room id written as a JSON string of \uXXXX
// surrogate pairs, with room for surrounding whitespace.
const maxRoomBodySize = 12*domain.MaxRoomIDLength + 64

func (h *RoomHandler) Create(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRoomBodySize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", httpdto.CodeInvalidArgument))
		return
	}
	if len(body) > maxRoomBodySize {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("request body too large", httpdto.CodeInvalidArgument))
		return
	}

	room, err := h.rooms.CreateRoom(c.Request.Context(), httpdto.ParseRoomIDBody(body))
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) Join(c *gin.Context) {
	room, err := h.rooms.JoinRoom(c.Request.Context(), c.Param("roomId"))
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Messages(c *gin.Context) {
	var q httpdto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid page or size", httpdto.CodeInvalidArgument))
		return
	}

	messages, err := h.history.GetPage(c.Request.Context(), c.Param("roomId"), q.Page, q.Size)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.rooms.DeleteRoom(c.Request.Context(), c.Param("roomId")); err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.String(http.StatusOK, httpdto.RoomDeletedMessage)
}
