package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	bookingRepo "gutterbook/database/repository/booking"
	calendarRepo "gutterbook/database/repository/calendar"
	"gutterbook/models"
)

// CaptureCompleted is the gateway status that finalizes a payment.
const CaptureCompleted = "COMPLETED"

// HandleCaptureResult runs the Held -> Confirmed transition off a payment
// capture callback. Duplicate callbacks for an already-confirmed booking
// are a success no-op.
func (e *DefaultEngine) HandleCaptureResult(ctx context.Context, res models.CaptureResult) (*models.Booking, error) {
	if res.OrderID == "" {
		return nil, NewValidationError("Order id is required.")
	}

	b, err := e.Bookings.GetByOrderID(ctx, res.OrderID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, NewNotFoundError("No booking found for this order.")
		}
		e.Logger.Error("failed to look up booking by order id",
			zap.String("orderId", res.OrderID), zap.Error(err))
		return nil, NewInternalError("Failed to look up the booking.")
	}

	if b.Status == models.BookingConfirmed {
		e.Logger.Info("duplicate capture callback ignored",
			zap.String("bookingId", b.ID), zap.String("orderId", res.OrderID))
		return b, nil
	}
	if b.Status != models.BookingHeld {
		return nil, NewInternalError(fmt.Sprintf(
			"Booking %s is %s and cannot be confirmed.", b.ID, b.Status))
	}

	if res.Status != CaptureCompleted {
		// The hold stays in place; the sweeper reclaims it if payment
		// never completes.
		return nil, NewGatewayError(fmt.Sprintf("Payment capture failed with status %s.", res.Status))
	}

	return e.confirm(ctx, b, res.CaptureID)
}

// ConfirmBookingManually finalizes a pay-on-site booking without a
// gateway capture; staff only.
func (e *DefaultEngine) ConfirmBookingManually(ctx context.Context, id string) (*models.Booking, error) {
	b, err := e.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BookingConfirmed {
		return b, nil
	}
	if b.Status != models.BookingHeld {
		return nil, NewConflictError(fmt.Sprintf("Booking is %s and cannot be confirmed.", b.Status))
	}
	return e.confirm(ctx, b, "")
}

func (e *DefaultEngine) confirm(ctx context.Context, b *models.Booking, captureID string) (*models.Booking, error) {
	if err := e.Calendar.ConfirmSlot(ctx, b.Date, b.Window, b.ID); err != nil {
		if errors.Is(err, calendarRepo.ErrSlotConflict) {
			// The hold was reclaimed between lookup and confirm.
			return nil, NewConflictError("The slot hold has already been released.")
		}
		e.Logger.Error("failed to confirm slot occupancy",
			zap.String("bookingId", b.ID), zap.String("date", b.Date),
			zap.String("window", b.Window), zap.Error(err))
		return nil, NewInternalError("Failed to finalize the slot reservation.")
	}

	if err := e.Bookings.MarkConfirmed(ctx, b.ID, captureID); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// A concurrent duplicate callback won; report its result.
			current, getErr := e.Bookings.GetByID(ctx, b.ID)
			if getErr == nil && current.Status == models.BookingConfirmed {
				return current, nil
			}
		}
		e.Logger.Error("failed to mark booking confirmed",
			zap.String("bookingId", b.ID), zap.Error(err))
		return nil, NewInternalError("Failed to confirm the booking.")
	}
	e.invalidateDay(ctx, b.Date)

	b.Status = models.BookingConfirmed
	b.CaptureID = captureID
	b.HoldExpiresAt = nil
	b.UpdatedAt = time.Now().UTC()

	e.Logger.Info("booking confirmed",
		zap.String("bookingId", b.ID),
		zap.String("date", b.Date),
		zap.String("window", b.Window))

	e.notifyConfirmed(ctx, b)
	return b, nil
}
