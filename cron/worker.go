package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gutterbook/services/booking"
)

// StartExpirySweeper schedules the periodic reclaim of abandoned holds.
// The interval is a tuning parameter; each run is independently
// idempotent so overlapping or missed runs are harmless.
func StartExpirySweeper(engine booking.Engine, intervalMinutes int, logger *zap.Logger) *cron.Cron {
	if intervalMinutes <= 0 {
		intervalMinutes = 15
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		reclaimed, err := engine.ExpireOverdueHolds(ctx, time.Now())
		if err != nil {
			logger.Error("expiry sweep failed", zap.Error(err))
			return
		}
		if reclaimed > 0 {
			logger.Info("expiry sweep completed", zap.Int("reclaimed", reclaimed))
		}
	})
	if err != nil {
		logger.Fatal("failed to schedule expiry sweeper", zap.Error(err))
	}

	c.Start()
	logger.Info("expiry sweeper started", zap.String("schedule", spec))
	return c
}
