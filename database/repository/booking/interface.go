package bookingRepo

import (
	"context"
	"errors"
	"time"

	"gutterbook/models"
)

// ErrBookingNotFound is returned when no booking matches the lookup key.
var ErrBookingNotFound = errors.New("booking not found")

// ErrStatusConflict is returned when a status transition's guard does not
// match the stored status, e.g. confirming a booking that already expired.
var ErrStatusConflict = errors.New("booking status conflict")

// BookingRepository persists booking records. Status transitions are
// conditional writes guarded on the prior status so replays and races
// surface as ErrStatusConflict instead of silently overwriting state.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id string) error

	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	GetByCaptureID(ctx context.Context, captureID string) (*models.Booking, error)

	SetOrderID(ctx context.Context, id, orderID string) error

	// MarkConfirmed guards on status held.
	MarkConfirmed(ctx context.Context, id, captureID string) error
	// MarkReleased guards on status held.
	MarkReleased(ctx context.Context, id string) error
	// MarkExpired guards on status held.
	MarkExpired(ctx context.Context, id string) error
	// MarkRefunded guards on status confirmed.
	MarkRefunded(ctx context.Context, id, refundID string, amount float64, reason string) error

	// FindExpiredHeld returns held bookings whose hold expiry has passed.
	FindExpiredHeld(ctx context.Context, now time.Time) ([]models.Booking, error)

	List(ctx context.Context, page, limit int) ([]models.Booking, int64, error)

	EnsureIndexes() error
}
