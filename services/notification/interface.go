package notification

import (
	"context"

	"gutterbook/models"
)

// Dispatcher sends booking lifecycle emails. Calls are fire-and-forget
// from the engine's point of view: errors are logged by the caller and
// never affect booking state.
type Dispatcher interface {
	// BookingConfirmed mails the customer their confirmation and the
	// staff inbox a copy.
	BookingConfirmed(ctx context.Context, booking *models.Booking) error

	// RefundProcessed mails the customer and staff the refund details.
	RefundProcessed(ctx context.Context, booking *models.Booking) error
}
