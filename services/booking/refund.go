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

// RefundBooking runs the Confirmed -> Refunded transition. The capture id
// must resolve to exactly one confirmed booking; on gateway success the
// slot is freed again.
func (e *DefaultEngine) RefundBooking(ctx context.Context, req models.RefundRequest) (*models.Booking, error) {
	if req.CaptureID == "" {
		return nil, NewValidationError("Capture id is required.")
	}

	b, err := e.Bookings.GetByCaptureID(ctx, req.CaptureID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, NewNotFoundError("No booking found for this capture id.")
		}
		e.Logger.Error("failed to look up booking by capture id",
			zap.String("captureId", req.CaptureID), zap.Error(err))
		return nil, NewInternalError("Failed to look up the booking.")
	}
	if b.Status != models.BookingConfirmed {
		return nil, NewConflictError(fmt.Sprintf(
			"Booking is %s and cannot be refunded.", b.Status))
	}

	amount := req.Amount
	if amount == 0 {
		amount = b.TotalPrice
	}
	if amount < 0 || amount > b.TotalPrice {
		return nil, NewValidationError("Refund amount must be between 0 and the amount paid.")
	}

	ref, err := e.Gateway.RefundCapture(ctx, req.CaptureID, amount)
	if err != nil {
		e.Logger.Error("gateway refund failed",
			zap.String("bookingId", b.ID), zap.String("captureId", req.CaptureID), zap.Error(err))
		return nil, NewGatewayError("The payment gateway rejected the refund.")
	}

	if err := e.Bookings.MarkRefunded(ctx, b.ID, ref.ID, amount, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return nil, NewConflictError("Booking has already been refunded.")
		}
		e.Logger.Error("failed to mark booking refunded",
			zap.String("bookingId", b.ID), zap.Error(err))
		return nil, NewInternalError("Refund succeeded at the gateway but could not be recorded.")
	}

	// The customer no longer occupies the window.
	if err := e.Calendar.ReleaseSlot(ctx, b.Date, b.Window, b.ID); err != nil &&
		!errors.Is(err, calendarRepo.ErrSlotConflict) {
		e.Logger.Error("failed to free slot after refund",
			zap.String("bookingId", b.ID), zap.Error(err))
	}
	e.invalidateDay(ctx, b.Date)

	now := time.Now().UTC()
	b.Status = models.BookingRefunded
	b.RefundID = ref.ID
	b.RefundAmount = amount
	b.RefundReason = req.Reason
	b.RefundedAt = &now

	e.Logger.Info("booking refunded",
		zap.String("bookingId", b.ID),
		zap.String("refundId", ref.ID),
		zap.Float64("amount", amount))

	e.notifyRefunded(ctx, b)
	return b, nil
}
