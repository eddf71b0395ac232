package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	calendarRepo "gutterbook/database/repository/calendar"
	"gutterbook/models"
)

// availabilityCacheTTL bounds staleness of the cached per-day view. The
// cache is also invalidated on every occupancy mutation for the date.
const availabilityCacheTTL = 30 * time.Second

func availabilityKey(date string) string {
	return "availability:" + date
}

// ListAvailability produces the 8-window status list for each of days
// consecutive dates starting at from. Pure read; a date with no calendar
// document is all free.
func (e *DefaultEngine) ListAvailability(ctx context.Context, from string, days int) ([]models.DayAvailability, error) {
	start, err := time.ParseInLocation(models.DateLayout, from, e.Location)
	if err != nil {
		return nil, NewValidationError("Invalid date format. Please use YYYY-MM-DD.")
	}
	if days < 1 || days > 60 {
		return nil, NewValidationError("Days must be between 1 and 60.")
	}

	result := make([]models.DayAvailability, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(models.DateLayout)

		if view, ok := e.cachedDay(ctx, date); ok {
			result = append(result, *view)
			continue
		}

		day, err := e.Calendar.GetDay(ctx, date)
		if err != nil && !errors.Is(err, calendarRepo.ErrDayNotFound) {
			e.Logger.Error("failed to read day calendar",
				zap.String("date", date), zap.Error(err))
			return nil, NewInternalError("Failed to read availability.")
		}

		view := buildDayView(date, day)
		e.cacheDay(ctx, date, &view)
		result = append(result, view)
	}
	return result, nil
}

// buildDayView overlays the persisted entries on the fixed window list.
// Holder identity is exposed only as an opaque reference.
func buildDayView(date string, day *models.DayCalendar) models.DayAvailability {
	view := models.DayAvailability{
		Date:  date,
		Slots: make([]models.SlotStatusView, 0, len(models.SlotWindows)),
	}
	for _, window := range models.SlotWindows {
		slot := models.SlotStatusView{Window: window, Status: models.StatusFree}
		if day != nil {
			if entry := day.Entry(window); entry != nil {
				switch entry.Status {
				case models.SlotHeld:
					slot.Status = models.StatusHeld
					slot.Ref = entry.BookingID
				case models.SlotBooked:
					slot.Status = models.StatusBooked
					slot.Ref = entry.BookingID
				case models.SlotBlocked:
					slot.Status = models.StatusBlocked
					slot.Ref = entry.StaffRef
				}
			}
		}
		view.Slots = append(view.Slots, slot)
	}
	return view
}

func (e *DefaultEngine) cachedDay(ctx context.Context, date string) (*models.DayAvailability, bool) {
	if e.Cache == nil {
		return nil, false
	}
	data, err := e.Cache.Get(ctx, availabilityKey(date)).Result()
	if err != nil {
		return nil, false
	}
	var view models.DayAvailability
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return nil, false
	}
	return &view, true
}

func (e *DefaultEngine) cacheDay(ctx context.Context, date string, view *models.DayAvailability) {
	if e.Cache == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := e.Cache.Set(ctx, availabilityKey(date), data, availabilityCacheTTL).Err(); err != nil {
		e.Logger.Warn("failed to cache availability", zap.String("date", date), zap.Error(err))
	}
}

// invalidateDay drops the cached availability view after any occupancy
// mutation for the date.
func (e *DefaultEngine) invalidateDay(ctx context.Context, date string) {
	if e.Cache == nil {
		return
	}
	if err := e.Cache.Del(ctx, availabilityKey(date)).Err(); err != nil {
		e.Logger.Warn("failed to invalidate availability cache",
			zap.String("date", date), zap.Error(err))
	}
}
