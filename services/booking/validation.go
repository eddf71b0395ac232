package booking

import (
	"fmt"
	"time"

	"gutterbook/models"
)

// validateBookingRequest runs the ordered precondition checks for a new
// booking. It performs no side effects; the first violated check wins.
// The returned error is always a validation Error.
func validateBookingRequest(req models.CreateBookingRequest, now time.Time, loc *time.Location) error {
	required := []struct {
		value, name string
	}{
		{req.CustomerName, "customerName"},
		{req.Email, "email"},
		{req.ContactNumber, "contactNumber"},
		{req.FirstLineOfAddress, "firstLineOfAddress"},
		{req.Town, "town"},
		{req.Postcode, "postcode"},
		{req.SelectedDate, "selectedDate"},
		{req.SelectedTimeSlot, "selectedTimeSlot"},
		{req.SelectService, "selectService"},
	}
	for _, f := range required {
		if f.value == "" {
			return NewValidationError(fmt.Sprintf("Required field is missing: %s.", f.name))
		}
	}

	switch req.SelectService {
	case models.ServiceGutterCleaning:
		if len(req.RepairOptions) > 0 {
			return NewValidationError("Gutter repair options are not valid for a gutter cleaning booking.")
		}
		for _, opt := range req.CleaningOptions {
			if !IsCleaningOption(opt) {
				return NewValidationError(fmt.Sprintf("Unknown gutter cleaning option: %s.", opt))
			}
		}
	case models.ServiceGutterRepair:
		if len(req.CleaningOptions) > 0 {
			return NewValidationError("Gutter cleaning options are not valid for a gutter repair booking.")
		}
		for _, opt := range req.RepairOptions {
			if !IsRepairOption(opt) {
				return NewValidationError(fmt.Sprintf("Unknown gutter repair option: %s.", opt))
			}
		}
	default:
		return NewValidationError(fmt.Sprintf("Unknown service: %s.", req.SelectService))
	}

	if req.PaymentMethod != models.PayOnline && req.PaymentMethod != models.PayOnSite {
		return NewValidationError(fmt.Sprintf("Unsupported payment method: %s.", req.PaymentMethod))
	}

	if !models.IsValidWindow(req.SelectedTimeSlot) {
		return NewValidationError(fmt.Sprintf("Unknown time slot: %s.", req.SelectedTimeSlot))
	}

	date, err := time.ParseInLocation(models.DateLayout, req.SelectedDate, loc)
	if err != nil {
		return NewValidationError("Invalid date format. Please use YYYY-MM-DD.")
	}

	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return NewValidationError("Bookings are only allowed from Monday to Friday.")
	}

	// Same-day bookings are rejected outright, even while slots remain.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if !date.After(today) {
		return NewValidationError("Bookings must be for a future date.")
	}

	if !models.WindowStart(date, req.SelectedTimeSlot, loc).After(now) {
		return NewValidationError("The selected time slot has already started. Please select a future time slot.")
	}

	return nil
}
