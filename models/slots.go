package models

import "time"

// DateLayout is the canonical wire and storage format for booking dates.
const DateLayout = "2006-01-02"

// SlotWindows is the fixed list of bookable windows per business day,
// in display order.
var SlotWindows = []string{
	"9:00-9:45 AM",
	"9:45-10:30 AM",
	"10:30-11:15 AM",
	"11:15-12:00 PM",
	"12:00-12:45 PM",
	"12:45-1:30 PM",
	"1:30-2:15 PM",
	"2:15-3:00 PM",
}

// slotWindowStart maps each window to its start, in minutes from midnight.
var slotWindowStart = map[string]int{
	"9:00-9:45 AM":   540,
	"9:45-10:30 AM":  585,
	"10:30-11:15 AM": 630,
	"11:15-12:00 PM": 675,
	"12:00-12:45 PM": 720,
	"12:45-1:30 PM":  765,
	"1:30-2:15 PM":   810,
	"2:15-3:00 PM":   855,
}

// IsValidWindow reports whether w is one of the defined slot windows.
func IsValidWindow(w string) bool {
	_, ok := slotWindowStart[w]
	return ok
}

// WindowStart returns the wall-clock start of a window on the given date
// in the given location. The window must be valid.
func WindowStart(date time.Time, window string, loc *time.Location) time.Time {
	mins := slotWindowStart[window]
	return time.Date(date.Year(), date.Month(), date.Day(), mins/60, mins%60, 0, 0, loc)
}

// Slot occupancy states as persisted in a day calendar entry.
const (
	SlotHeld    = "held"
	SlotBooked  = "booked"
	SlotBlocked = "blocked"
)

// SlotEntry records the occupancy of a single window on a single day.
// Free windows have no entry; the absence of an entry is what the
// conditional writes in the calendar repository test against.
type SlotEntry struct {
	Window    string     `bson:"window" json:"window"`
	Status    string     `bson:"status" json:"status"`
	BookingID string     `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	StaffRef  string     `bson:"staffRef,omitempty" json:"staffRef,omitempty"`
	ExpiresAt *time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

// DayCalendar is the per-date document owning slot occupancy truth.
// At most one exists per date (unique index); it is created lazily on the
// first hold or block and never deleted.
type DayCalendar struct {
	Date      string      `bson:"date" json:"date"` // DateLayout
	Slots     []SlotEntry `bson:"slots" json:"slots"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// Entry returns the entry for a window, or nil if the window is free.
func (d *DayCalendar) Entry(window string) *SlotEntry {
	for i := range d.Slots {
		if d.Slots[i].Window == window {
			return &d.Slots[i]
		}
	}
	return nil
}
