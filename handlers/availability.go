package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gutterbook/models"
	"gutterbook/utils"
)

// AvailabilityHandler returns per-window slot statuses for a date range.
// Query params: from (YYYY-MM-DD, defaults to today) and days (1-60,
// defaults to 14).
func (h *BookingHandler) AvailabilityHandler(c *gin.Context) {
	from := c.Query("from")
	if from == "" {
		from = time.Now().Format(models.DateLayout)
	}

	days := 14
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid days parameter", "days must be an integer")
			return
		}
		days = parsed
	}

	result, err := h.Engine.ListAvailability(c.Request.Context(), from, days)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "days": days, "availability": result})
}
