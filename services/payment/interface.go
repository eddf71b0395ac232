package payment

import "context"

// Order is a gateway order awaiting customer approval.
type Order struct {
	ID          string
	ApprovalURL string
}

// Refund is the result of a gateway refund call.
type Refund struct {
	ID     string
	Status string
}

// Gateway abstracts the payment processor. The booking engine treats every
// call as an opaque remote operation; a timeout is a failure, never a
// success.
type Gateway interface {
	// CreateOrder registers a payment of the given amount (major currency
	// units) and returns the order id plus the customer approval URL.
	CreateOrder(ctx context.Context, amount float64, description string) (*Order, error)

	// RefundCapture refunds a previously captured payment. A zero amount
	// is rejected by the caller before reaching the gateway.
	RefundCapture(ctx context.Context, captureID string, amount float64) (*Refund, error)
}
