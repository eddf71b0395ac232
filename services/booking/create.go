package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	calendarRepo "gutterbook/database/repository/calendar"
	"gutterbook/models"
)

// CreateBooking runs the Requested -> Held transition: full validation,
// booking insert, then the conditional hold on the slot. Losing the
// hold race rolls the booking back and reports a conflict, which is what
// guarantees at most one held or confirmed booking per slot.
func (e *DefaultEngine) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.BookingResult, error) {
	now := e.now().In(e.Location)

	if err := validateBookingRequest(req, now, e.Location); err != nil {
		return nil, err
	}

	price := ComputeTotalPrice(req)
	if price <= 0 {
		return nil, NewValidationError("Total price cannot be 0. Please review your selections.")
	}

	// Optimistic availability check; the hold below is what actually
	// enforces exclusivity.
	day, err := e.Calendar.GetDay(ctx, req.SelectedDate)
	if err != nil && !errors.Is(err, calendarRepo.ErrDayNotFound) {
		e.Logger.Error("failed to read day calendar", zap.String("date", req.SelectedDate), zap.Error(err))
		return nil, NewInternalError("Failed to check slot availability.")
	}
	if day != nil && day.Entry(req.SelectedTimeSlot) != nil {
		return nil, NewConflictError("The selected time slot is not available.")
	}

	expiresAt := now.Add(e.HoldTTL).UTC()
	booking := &models.Booking{
		ID:                 uuid.New().String(),
		CustomerName:       req.CustomerName,
		Email:              req.Email,
		ContactNumber:      req.ContactNumber,
		FirstLineOfAddress: req.FirstLineOfAddress,
		Town:               req.Town,
		Postcode:           req.Postcode,
		Date:               req.SelectedDate,
		Window:             req.SelectedTimeSlot,
		Service:            req.SelectService,
		CleaningOptions:    req.CleaningOptions,
		RepairOptions:      req.RepairOptions,
		HomeType:           req.SelectHomeType,
		HomeStyle:          req.SelectHomeStyle,
		Bedrooms:           req.NumberOfBedrooms,
		Stories:            req.NumberOfStories,
		Message:            req.Message,
		TotalPrice:         price,
		PaymentMethod:      req.PaymentMethod,
		Status:             models.BookingHeld,
		HoldExpiresAt:      &expiresAt,
		CreatedAt:          now.UTC(),
		UpdatedAt:          now.UTC(),
	}

	if err := e.Bookings.Create(ctx, booking); err != nil {
		e.Logger.Error("failed to create booking record", zap.Error(err))
		return nil, NewInternalError("Failed to create booking.")
	}

	if err := e.Calendar.HoldSlot(ctx, booking.Date, booking.Window, booking.ID, expiresAt); err != nil {
		if delErr := e.Bookings.Delete(ctx, booking.ID); delErr != nil {
			e.Logger.Error("failed to roll back booking after hold failure",
				zap.String("bookingId", booking.ID), zap.Error(delErr))
		}
		if errors.Is(err, calendarRepo.ErrSlotConflict) {
			return nil, NewConflictError("The selected time slot is no longer available.")
		}
		e.Logger.Error("failed to hold slot", zap.String("date", booking.Date),
			zap.String("window", booking.Window), zap.Error(err))
		return nil, NewInternalError("Failed to reserve the time slot.")
	}
	e.invalidateDay(ctx, booking.Date)

	e.Logger.Info("slot held",
		zap.String("bookingId", booking.ID),
		zap.String("date", booking.Date),
		zap.String("window", booking.Window),
		zap.Time("expiresAt", expiresAt))

	result := &models.BookingResult{Booking: booking}

	if req.PaymentMethod == models.PayOnline {
		desc := fmt.Sprintf("%s on %s, %s", booking.Service, booking.Date, booking.Window)
		order, err := e.Gateway.CreateOrder(ctx, price, desc)
		if err != nil {
			e.Logger.Error("gateway order creation failed",
				zap.String("bookingId", booking.ID), zap.Error(err))
			e.abandonHold(ctx, booking)
			return nil, NewGatewayError("Failed to start the payment. Please try again.")
		}
		if err := e.Bookings.SetOrderID(ctx, booking.ID, order.ID); err != nil {
			e.Logger.Error("failed to store gateway order id",
				zap.String("bookingId", booking.ID), zap.String("orderId", order.ID), zap.Error(err))
			e.abandonHold(ctx, booking)
			return nil, NewInternalError("Failed to record the payment order.")
		}
		booking.OrderID = order.ID
		result.OrderID = order.ID
		result.ApprovalURL = order.ApprovalURL
	}

	return result, nil
}

// abandonHold releases a freshly-acquired hold after a post-hold failure.
// The booking record is retained in released state for audit.
func (e *DefaultEngine) abandonHold(ctx context.Context, b *models.Booking) {
	if err := e.Calendar.ReleaseHeldSlot(ctx, b.Date, b.Window, b.ID); err != nil {
		e.Logger.Error("failed to release abandoned hold",
			zap.String("bookingId", b.ID), zap.Error(err))
	}
	if err := e.Bookings.MarkReleased(ctx, b.ID); err != nil {
		e.Logger.Error("failed to mark abandoned booking released",
			zap.String("bookingId", b.ID), zap.Error(err))
	}
	e.invalidateDay(ctx, b.Date)
}
