package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gutterbook/services/booking"
	"gutterbook/utils"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Engine booking.Engine
	Logger *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(engine booking.Engine, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Logger: logger}
}

// statusFor maps engine error codes to HTTP statuses.
func statusFor(err error) int {
	switch booking.CodeOf(err) {
	case booking.CodeValidation:
		return http.StatusBadRequest
	case booking.CodeConflict:
		return http.StatusConflict
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError converts an engine error into the standard JSON error
// shape. Internal details are never leaked to clients.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, status, "Internal Server Error", "")
		return
	}
	utils.JSONError(c, status, messageOf(err), "")
}

func messageOf(err error) string {
	var be *booking.Error
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}
