package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	calendarRepo "gutterbook/database/repository/calendar"
	"gutterbook/models"
)

// validateSlotSelection checks the common date+windows shape of the staff
// block/unblock requests.
func validateSlotSelection(date string, windows []string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return NewValidationError("Invalid date format. Please use YYYY-MM-DD.")
	}
	if len(windows) == 0 {
		return NewValidationError("At least one time slot is required.")
	}
	for _, w := range windows {
		if !models.IsValidWindow(w) {
			return NewValidationError(fmt.Sprintf("Unknown time slot: %s.", w))
		}
	}
	return nil
}

// BlockSlots marks windows as staff-blocked. A window already held,
// booked or blocked is refused; the remaining windows in the request are
// still applied and the failures reported together.
func (e *DefaultEngine) BlockSlots(ctx context.Context, date string, windows []string, staffRef string) error {
	if err := validateSlotSelection(date, windows); err != nil {
		return err
	}
	if staffRef == "" {
		return NewValidationError("Staff reference is required.")
	}

	var occupied []string
	for _, w := range windows {
		if err := e.Calendar.BlockSlot(ctx, date, w, staffRef); err != nil {
			if errors.Is(err, calendarRepo.ErrSlotConflict) {
				occupied = append(occupied, w)
				continue
			}
			e.Logger.Error("failed to block slot",
				zap.String("date", date), zap.String("window", w), zap.Error(err))
			return NewInternalError("Failed to block the time slot.")
		}
	}
	e.invalidateDay(ctx, date)

	if len(occupied) > 0 {
		return NewConflictError(fmt.Sprintf(
			"These slots are occupied and cannot be blocked: %s.", strings.Join(occupied, ", ")))
	}
	return nil
}

// UnblockSlots removes staff blocks. Windows held or booked by customers
// are never touched.
func (e *DefaultEngine) UnblockSlots(ctx context.Context, date string, windows []string) error {
	if err := validateSlotSelection(date, windows); err != nil {
		return err
	}

	var notBlocked []string
	for _, w := range windows {
		if err := e.Calendar.UnblockSlot(ctx, date, w); err != nil {
			if errors.Is(err, calendarRepo.ErrSlotConflict) {
				notBlocked = append(notBlocked, w)
				continue
			}
			e.Logger.Error("failed to unblock slot",
				zap.String("date", date), zap.String("window", w), zap.Error(err))
			return NewInternalError("Failed to unblock the time slot.")
		}
	}
	e.invalidateDay(ctx, date)

	if len(notBlocked) > 0 {
		return NewConflictError(fmt.Sprintf(
			"These slots are not blocked: %s.", strings.Join(notBlocked, ", ")))
	}
	return nil
}
