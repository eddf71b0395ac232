package booking

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	bookingRepo "gutterbook/database/repository/booking"
	calendarRepo "gutterbook/database/repository/calendar"
	"gutterbook/models"
	"gutterbook/services/notification"
	"gutterbook/services/payment"
)

// Engine is the booking/locking state machine. It is the only component
// that mutates booking status, and all slot occupancy changes it makes go
// through the calendar repository's conditional writes.
type Engine interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.BookingResult, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) (*models.Booking, error)
	ConfirmBookingManually(ctx context.Context, id string) (*models.Booking, error)
	HandleCaptureResult(ctx context.Context, res models.CaptureResult) (*models.Booking, error)
	RefundBooking(ctx context.Context, req models.RefundRequest) (*models.Booking, error)
	ListAvailability(ctx context.Context, from string, days int) ([]models.DayAvailability, error)
	BlockSlots(ctx context.Context, date string, windows []string, staffRef string) error
	UnblockSlots(ctx context.Context, date string, windows []string) error
	ExpireOverdueHolds(ctx context.Context, now time.Time) (int, error)
	ListBookings(ctx context.Context, page, limit int) (*models.BookingPage, error)
}

// DefaultEngine implements Engine.
type DefaultEngine struct {
	Calendar calendarRepo.CalendarRepository
	Bookings bookingRepo.BookingRepository
	Gateway  payment.Gateway
	Notifier notification.Dispatcher
	Cache    *redis.Client // optional availability cache
	Logger   *zap.Logger

	HoldTTL  time.Duration
	Location *time.Location

	// Clock overrides time.Now in tests; leave nil in production.
	Clock func() time.Time
}

func (e *DefaultEngine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

func (e *DefaultEngine) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := e.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, NewNotFoundError("Booking not found.")
		}
		e.Logger.Error("failed to fetch booking", zap.String("bookingId", id), zap.Error(err))
		return nil, NewInternalError("Failed to fetch booking.")
	}
	return b, nil
}

func (e *DefaultEngine) ListBookings(ctx context.Context, page, limit int) (*models.BookingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	bookings, total, err := e.Bookings.List(ctx, page, limit)
	if err != nil {
		e.Logger.Error("failed to list bookings", zap.Error(err))
		return nil, NewInternalError("Failed to list bookings.")
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return &models.BookingPage{
		Bookings:   bookings,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// notifyConfirmed dispatches confirmation emails. Failures are logged and
// never propagated: a failed email must not undo a paid booking.
func (e *DefaultEngine) notifyConfirmed(ctx context.Context, b *models.Booking) {
	if e.Notifier == nil {
		return
	}
	if err := e.Notifier.BookingConfirmed(ctx, b); err != nil {
		e.Logger.Warn("confirmation notification failed",
			zap.String("bookingId", b.ID), zap.Error(err))
	}
}

func (e *DefaultEngine) notifyRefunded(ctx context.Context, b *models.Booking) {
	if e.Notifier == nil {
		return
	}
	if err := e.Notifier.RefundProcessed(ctx, b); err != nil {
		e.Logger.Warn("refund notification failed",
			zap.String("bookingId", b.ID), zap.Error(err))
	}
}
