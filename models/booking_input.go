package models

// CreateBookingRequest is the payload for a new booking submission.
// Field presence is validated by the booking engine, not by binding tags,
// so every failure produces one specific message from one pipeline.
type CreateBookingRequest struct {
	CustomerName       string   `json:"customerName"`
	Email              string   `json:"email"`
	ContactNumber      string   `json:"contactNumber"`
	FirstLineOfAddress string   `json:"firstLineOfAddress"`
	Town               string   `json:"town"`
	Postcode           string   `json:"postcode"`
	SelectedDate       string   `json:"selectedDate"` // DateLayout
	SelectedTimeSlot   string   `json:"selectedTimeSlot"`
	SelectService      string   `json:"selectService"`
	CleaningOptions    []string `json:"gutterCleaningOptions"`
	RepairOptions      []string `json:"gutterRepairsOptions"`
	SelectHomeType     string   `json:"selectHomeType"`
	SelectHomeStyle    string   `json:"selectHomeStyle"`
	NumberOfBedrooms   string   `json:"numberOfBedrooms"`
	NumberOfStories    string   `json:"numberOfStories"`
	Message            string   `json:"message"`
	PaymentMethod      string   `json:"paymentMethod"`
}

// BookingResult is returned from a successful booking submission. For
// online payments ApprovalURL carries the gateway redirect.
type BookingResult struct {
	Booking     *Booking `json:"booking"`
	OrderID     string   `json:"orderId,omitempty"`
	ApprovalURL string   `json:"approvalUrl,omitempty"`
}

// CaptureResult is the gateway's capture callback payload correlated by
// order id.
type CaptureResult struct {
	OrderID   string  `json:"orderId"`
	Status    string  `json:"status"` // "COMPLETED" on success
	CaptureID string  `json:"captureId"`
	Amount    float64 `json:"amount"`
}

// RefundRequest is the administrative refund payload.
type RefundRequest struct {
	CaptureID string  `json:"captureId"`
	Amount    float64 `json:"amount"` // zero means full refund
	Reason    string  `json:"reason"`
}

// BookingPage is one page of booking history.
type BookingPage struct {
	Bookings   []Booking `json:"bookings"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	TotalPages int64     `json:"totalPages"`
}
