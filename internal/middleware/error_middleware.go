package middleware

import (
	"net/http"

	"chatroom/internal/transport/httpdto"
	"chatroom/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error handlers attached to the context.
// Handlers that already wrote a body are left alone.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.WithContext(c.Request.Context()).Errorf("request error: %s", err.Error())
		}
		if c.Writer.Written() {
			return
		}
		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), httpdto.CodeInternal))
	}
}
