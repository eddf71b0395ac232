package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gutterbook/models"
	"gutterbook/utils"
)

// slotMutationRequest is the payload for blocking or unblocking windows.
type slotMutationRequest struct {
	Date     string   `json:"date"`
	Windows  []string `json:"windows"`
	StaffRef string   `json:"staffRef,omitempty"`
}

// RefundHandler refunds a captured payment and frees the slot.
func (h *BookingHandler) RefundHandler(c *gin.Context) {
	var req models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	b, err := h.Engine.RefundBooking(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("refund processed",
		zap.String("bookingId", b.ID),
		zap.String("captureId", req.CaptureID),
		zap.Float64("amount", b.RefundAmount))
	c.JSON(http.StatusOK, b)
}

// ConfirmBookingHandler marks a pay-on-site hold as confirmed without a
// payment capture.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	id := c.Param("id")
	b, err := h.Engine.ConfirmBookingManually(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("booking confirmed manually", zap.String("bookingId", b.ID))
	c.JSON(http.StatusOK, b)
}

// BlockSlotsHandler marks windows as blocked so customers cannot book
// them.
func (h *BookingHandler) BlockSlotsHandler(c *gin.Context) {
	var req slotMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := h.Engine.BlockSlots(c.Request.Context(), req.Date, req.Windows, req.StaffRef); err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("slots blocked",
		zap.String("date", req.Date),
		zap.Strings("windows", req.Windows),
		zap.String("staffRef", req.StaffRef))
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "blocked": req.Windows})
}

// UnblockSlotsHandler removes staff blocks from windows.
func (h *BookingHandler) UnblockSlotsHandler(c *gin.Context) {
	var req slotMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := h.Engine.UnblockSlots(c.Request.Context(), req.Date, req.Windows); err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("slots unblocked",
		zap.String("date", req.Date),
		zap.Strings("windows", req.Windows))
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "unblocked": req.Windows})
}

// ListBookingsHandler pages through bookings, newest first.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.Engine.ListBookings(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
