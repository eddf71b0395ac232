package calendarRepo

import (
	"context"
	"errors"
	"time"

	"gutterbook/models"
)

// ErrSlotConflict is returned when a conditional occupancy write finds the
// slot in a different state than the transition expects. It is the single
// signal behind the "no double booking" guarantee.
var ErrSlotConflict = errors.New("slot occupancy conflict")

// ErrDayNotFound is returned by GetDay when no calendar exists for a date.
// Callers treat a missing day as "all windows free".
var ErrDayNotFound = errors.New("day calendar not found")

// CalendarRepository owns slot occupancy truth. Every mutation is a single
// conditional write on the per-day document, so transitions on the same
// (date, window) are linearizable across processes without any in-memory
// locking.
type CalendarRepository interface {
	GetDay(ctx context.Context, date string) (*models.DayCalendar, error)

	// HoldSlot transitions Free -> Held. Fails with ErrSlotConflict if any
	// entry already occupies the window.
	HoldSlot(ctx context.Context, date, window, bookingID string, expiresAt time.Time) error

	// ConfirmSlot transitions Held -> Booked for the given booking,
	// clearing the hold expiry so the occupancy is permanent.
	ConfirmSlot(ctx context.Context, date, window, bookingID string) error

	// ReleaseHeldSlot transitions Held -> Free, but only if the window is
	// still held by the given booking. A hold that was confirmed between
	// the caller's status check and this write is left untouched and
	// reported as ErrSlotConflict.
	ReleaseHeldSlot(ctx context.Context, date, window, bookingID string) error

	// ReleaseSlot transitions Held or Booked -> Free for the given
	// booking regardless of slot status. Only the refund path may use
	// it; everything racing against payment capture must use
	// ReleaseHeldSlot.
	ReleaseSlot(ctx context.Context, date, window, bookingID string) error

	// BlockSlot transitions Free -> Blocked on behalf of a staff member.
	BlockSlot(ctx context.Context, date, window, staffRef string) error

	// UnblockSlot transitions Blocked -> Free. Held and booked windows are
	// not touched.
	UnblockSlot(ctx context.Context, date, window string) error

	EnsureIndexes() error
}
