package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/apnadr/hospital-api/pkg/errors"
)

// Response is the wire envelope every endpoint produces.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message})
}

func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// Error maps an application error onto the envelope. Typed errors carry their
// own status; anything else is an internal error with a generic message so
// storage details never leak to clients.
func Error(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus(), Response{Success: false, Message: appErr.Message})
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "internal server error"})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}
