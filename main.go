package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"gutterbook/config"
	gcron "gutterbook/cron"
	"gutterbook/database"
	bookingRepo "gutterbook/database/repository/booking"
	calendarRepo "gutterbook/database/repository/calendar"
	"gutterbook/handlers"
	"gutterbook/routes"
	"gutterbook/services/booking"
	"gutterbook/services/notification"
	"gutterbook/services/payment"
	"gutterbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	calRepo := calendarRepo.NewMongoCalendarRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()

	if err := calRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure calendar indexes: %v", err)
	}
	if err := bkRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	loc, err := time.LoadLocation(config.AppConfig.BookingTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid booking timezone %q: %v", config.AppConfig.BookingTimezone, err)
	}

	// services.
	gateway := payment.NewStripeGateway(
		config.AppConfig.StripeSuccessURL,
		config.AppConfig.StripeCancelURL,
	)
	dispatcher := notification.NewSMTPDispatcher(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPass,
		config.AppConfig.FromEmail,
		config.AppConfig.AdminEmail,
	)

	engine := &booking.DefaultEngine{
		Calendar: calRepo,
		Bookings: bkRepo,
		Gateway:  gateway,
		Notifier: dispatcher,
		Cache:    utils.GetCacheClient(),
		Logger:   logger,
		HoldTTL:  time.Duration(config.AppConfig.HoldTTLMinutes) * time.Minute,
		Location: loc,
	}

	bookingHandler := handlers.NewBookingHandler(engine, logger)
	routes.RegisterRoutes(router, bookingHandler)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	sweeper := gcron.StartExpirySweeper(engine, config.AppConfig.SweepIntervalMinutes, logger)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	sweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
