package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gutterbook/models"
	"gutterbook/utils"
)

// CreateBookingHandler places a hold on the requested slot and, for
// online payments, returns the order id and approval URL alongside the
// held booking.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.Engine.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("booking created",
		zap.String("bookingId", result.Booking.ID),
		zap.String("date", result.Booking.Date),
		zap.String("window", result.Booking.Window))
	c.JSON(http.StatusCreated, result)
}

// GetBookingHandler fetches a single booking by id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	id := c.Param("id")
	b, err := h.Engine.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler releases a pending hold before payment completes.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	id := c.Param("id")
	b, err := h.Engine.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("booking cancelled", zap.String("bookingId", b.ID))
	c.JSON(http.StatusOK, b)
}
