package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	bookingRepo "gutterbook/database/repository/booking"
	calendarRepo "gutterbook/database/repository/calendar"
)

// ExpireOverdueHolds runs the Held -> Expired transition for every hold
// past its expiry. Safe to re-run: bookings that already left the held
// state are skipped, and one failure never blocks the rest of the batch.
// Returns the number of holds reclaimed.
func (e *DefaultEngine) ExpireOverdueHolds(ctx context.Context, now time.Time) (int, error) {
	overdue, err := e.Bookings.FindExpiredHeld(ctx, now.UTC())
	if err != nil {
		e.Logger.Error("failed to scan for expired holds", zap.Error(err))
		return 0, NewInternalError("Failed to scan for expired holds.")
	}

	reclaimed := 0
	for i := range overdue {
		b := &overdue[i]

		// Guarded on held status: a hold confirmed between the scan and
		// this write is left in place, and the status guard below skips
		// the booking.
		if err := e.Calendar.ReleaseHeldSlot(ctx, b.Date, b.Window, b.ID); err != nil &&
			!errors.Is(err, calendarRepo.ErrSlotConflict) {
			e.Logger.Error("failed to release expired slot",
				zap.String("bookingId", b.ID), zap.String("date", b.Date),
				zap.String("window", b.Window), zap.Error(err))
			continue
		}

		if err := e.Bookings.MarkExpired(ctx, b.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				// Already confirmed or cancelled between scan and now.
				continue
			}
			e.Logger.Error("failed to mark booking expired",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		e.invalidateDay(ctx, b.Date)

		e.Logger.Info("expired hold reclaimed",
			zap.String("bookingId", b.ID),
			zap.String("date", b.Date),
			zap.String("window", b.Window))
		reclaimed++
	}
	return reclaimed, nil
}
