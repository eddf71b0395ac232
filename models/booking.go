package models

import "time"

// Booking lifecycle states.
const (
	BookingHeld      = "held"      // slot reserved, payment pending
	BookingConfirmed = "confirmed" // payment captured, slot permanent
	BookingReleased  = "released"  // cancelled before payment
	BookingExpired   = "expired"   // hold reclaimed by the sweeper
	BookingRefunded  = "refunded"  // confirmed booking refunded, slot freed
)

// Payment methods accepted on a booking request.
const (
	PayOnline = "Online"
	PayOnSite = "PayOnSite"
)

// Service types and their sub-options.
const (
	ServiceGutterCleaning = "Gutter Cleaning"
	ServiceGutterRepair   = "Gutter Repair"
)

// Booking represents one customer's booking attempt and its full history.
// Records are retained for audit in every terminal state.
type Booking struct {
	ID                 string   `bson:"id" json:"id"`
	CustomerName       string   `bson:"customerName" json:"customerName"`
	Email              string   `bson:"email" json:"email"`
	ContactNumber      string   `bson:"contactNumber" json:"contactNumber"`
	FirstLineOfAddress string   `bson:"firstLineOfAddress" json:"firstLineOfAddress"`
	Town               string   `bson:"town" json:"town"`
	Postcode           string   `bson:"postcode" json:"postcode"`
	Date               string   `bson:"date" json:"date"` // DateLayout
	Window             string   `bson:"window" json:"window"`
	Service            string   `bson:"service" json:"service"`
	CleaningOptions    []string `bson:"cleaningOptions,omitempty" json:"cleaningOptions,omitempty"`
	RepairOptions      []string `bson:"repairOptions,omitempty" json:"repairOptions,omitempty"`
	HomeType           string   `bson:"homeType,omitempty" json:"homeType,omitempty"`
	HomeStyle          string   `bson:"homeStyle,omitempty" json:"homeStyle,omitempty"`
	Bedrooms           string   `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Stories            string   `bson:"stories,omitempty" json:"stories,omitempty"`
	Message            string   `bson:"message,omitempty" json:"message,omitempty"`
	TotalPrice         float64  `bson:"totalPrice" json:"totalPrice"`
	PaymentMethod      string   `bson:"paymentMethod" json:"paymentMethod"`
	Status             string   `bson:"status" json:"status"`

	// Payment gateway references; set as the payment progresses.
	OrderID   string `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CaptureID string `bson:"captureId,omitempty" json:"captureId,omitempty"`
	RefundID  string `bson:"refundId,omitempty" json:"refundId,omitempty"`

	RefundAmount float64    `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`
	RefundReason string     `bson:"refundReason,omitempty" json:"refundReason,omitempty"`
	RefundedAt   *time.Time `bson:"refundedAt,omitempty" json:"refundedAt,omitempty"`

	// HoldExpiresAt bounds the held state; cleared on confirmation.
	HoldExpiresAt *time.Time `bson:"holdExpiresAt,omitempty" json:"holdExpiresAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
