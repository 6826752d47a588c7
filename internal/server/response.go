package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/at-ishikawa/memoquiz/internal/channel/line"
	"github.com/at-ishikawa/memoquiz/internal/clock"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/scheduler"
	"github.com/at-ishikawa/memoquiz/internal/token"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

// MsgQuizForbidden is the only message a learner sees for any token problem.
const MsgQuizForbidden = "cannot access this quiz"

// Response is the envelope of every JSON body the server writes.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func write(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

func Success(c *gin.Context, data any) {
	write(c, http.StatusOK, "ok", data)
}

func BadRequest(c *gin.Context, message string) {
	write(c, http.StatusBadRequest, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	c.Abort()
	write(c, http.StatusUnauthorized, message, nil)
}

func Forbidden(c *gin.Context, message string) {
	write(c, http.StatusForbidden, message, nil)
}

func NotFound(c *gin.Context, message string) {
	write(c, http.StatusNotFound, message, nil)
}

func Conflict(c *gin.Context, message string) {
	write(c, http.StatusConflict, message, nil)
}

// InternalError hides err from the client and attaches it to the context for the access log.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	write(c, http.StatusInternalServerError, "internal server error", nil)
}

// Error maps domain errors onto HTTP responses.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, token.ErrInvalid):
		_ = c.Error(err)
		Forbidden(c, MsgQuizForbidden)
	case errors.Is(err, quiz.ErrNotFound):
		NotFound(c, "quiz not found")
	case errors.Is(err, user.ErrNotFound):
		NotFound(c, "user not found")
	case errors.Is(err, quiz.ErrStatusConflict):
		Conflict(c, "quiz was updated concurrently, try again")
	case errors.Is(err, scheduler.ErrInvalidStatus), errors.Is(err, clock.ErrInvalidTimeOfDay):
		BadRequest(c, err.Error())
	case errors.Is(err, line.ErrInvalidRequest):
		BadRequest(c, "invalid webhook request")
	default:
		InternalError(c, err)
	}
}
