package booking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	bookingRepo "gutterbook/database/repository/booking"
	calendarRepo "gutterbook/database/repository/calendar"
	"gutterbook/models"
)

// CancelBooking runs the Held -> Released transition: an explicit
// cancellation while payment is still pending. The record is retained
// for audit.
func (e *DefaultEngine) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := e.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingHeld {
		return nil, NewConflictError(fmt.Sprintf(
			"Only pending bookings can be cancelled; this one is %s.", b.Status))
	}

	// Guarded on held status so a capture racing this cancel keeps the
	// paid slot; the conflict falls through to the status guard below.
	if err := e.Calendar.ReleaseHeldSlot(ctx, b.Date, b.Window, b.ID); err != nil &&
		!errors.Is(err, calendarRepo.ErrSlotConflict) {
		e.Logger.Error("failed to release slot on cancellation",
			zap.String("bookingId", b.ID), zap.Error(err))
		return nil, NewInternalError("Failed to release the time slot.")
	}

	if err := e.Bookings.MarkReleased(ctx, b.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// The sweeper or a concurrent cancel got there first.
			return nil, NewConflictError("Booking has already left the pending state.")
		}
		e.Logger.Error("failed to mark booking released",
			zap.String("bookingId", b.ID), zap.Error(err))
		return nil, NewInternalError("Failed to cancel the booking.")
	}
	e.invalidateDay(ctx, b.Date)

	b.Status = models.BookingReleased
	b.HoldExpiresAt = nil

	e.Logger.Info("booking released",
		zap.String("bookingId", b.ID),
		zap.String("date", b.Date),
		zap.String("window", b.Window))
	return b, nil
}
