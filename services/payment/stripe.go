package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/refund"
)

// StripeGateway implements Gateway on Stripe Checkout. A checkout session
// is the order, its payment intent is the capture reference.
type StripeGateway struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// NewStripeGateway constructs a StripeGateway. The global stripe.Key must
// already be set by main.
func NewStripeGateway(successURL, cancelURL string) *StripeGateway {
	return &StripeGateway{
		Currency:   "gbp",
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	}
}

// minorUnits converts a major-unit amount to the gateway's integer form.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (g *StripeGateway) CreateOrder(ctx context.Context, amount float64, description string) (*Order, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.Currency),
					UnitAmount: stripe.Int64(minorUnits(amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.SuccessURL),
		CancelURL:  stripe.String(g.CancelURL),
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}
	return &Order{ID: s.ID, ApprovalURL: s.URL}, nil
}

func (g *StripeGateway) RefundCapture(ctx context.Context, captureID string, amount float64) (*Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(captureID),
		Amount:        stripe.Int64(minorUnits(amount)),
	}
	params.Context = ctx

	r, err := refund.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to refund capture %s: %w", captureID, err)
	}
	return &Refund{ID: r.ID, Status: string(r.Status)}, nil
}
