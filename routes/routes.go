package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gutterbook/handlers"
	"gutterbook/middleware"
	"gutterbook/utils"
)

// RegisterPublicRoutes sets up the customer-facing endpoints.
func RegisterPublicRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/v1")
	{
		api.GET("/slots/availability", h.AvailabilityHandler)
		api.POST("/bookings", h.CreateBookingHandler)
		api.GET("/bookings/:id", h.GetBookingHandler)
		api.POST("/bookings/:id/cancel", h.CancelBookingHandler)
		api.POST("/payments/capture", h.CapturePaymentHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for staff operations.
func RegisterAdminRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	admin := r.Group("/api/v1/admin")
	{
		admin.Use(middleware.StaffAuthMiddleware())
		admin.GET("/bookings", h.ListBookingsHandler)
		admin.POST("/bookings/:id/confirm", h.ConfirmBookingHandler)
		admin.POST("/refunds", h.RefundHandler)
		admin.POST("/slots/block", h.BlockSlotsHandler)
		admin.POST("/slots/unblock", h.UnblockSlotsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, h)
	RegisterAdminRoutes(r, h)
}
