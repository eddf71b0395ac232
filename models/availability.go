package models

// Slot statuses as exposed by the availability query.
const (
	StatusFree    = "Free"
	StatusHeld    = "Held"
	StatusBooked  = "Booked"
	StatusBlocked = "Blocked"
)

// SlotStatusView is one window's status for display. Ref is an opaque
// booking or staff reference; customer contact data is never exposed.
type SlotStatusView struct {
	Window string `json:"window"`
	Status string `json:"status"`
	Ref    string `json:"ref,omitempty"`
}

// DayAvailability lists the status of all eight windows for one date.
type DayAvailability struct {
	Date  string           `json:"date"`
	Slots []SlotStatusView `json:"slots"`
}
