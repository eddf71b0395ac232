package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gutterbook/models"
	"gutterbook/utils"
)

// CapturePaymentHandler records the outcome of a payment capture and
// confirms the matching held booking. Replays of an already-processed
// capture return the confirmed booking unchanged.
func (h *BookingHandler) CapturePaymentHandler(c *gin.Context) {
	var res models.CaptureResult
	if err := c.ShouldBindJSON(&res); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	b, err := h.Engine.HandleCaptureResult(c.Request.Context(), res)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("payment capture processed",
		zap.String("bookingId", b.ID),
		zap.String("orderId", res.OrderID),
		zap.String("status", b.Status))
	c.JSON(http.StatusOK, b)
}
