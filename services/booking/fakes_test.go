package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	bookingRepo "gutterbook/database/repository/booking"
	calendarRepo "gutterbook/database/repository/calendar"
	"gutterbook/models"
	"gutterbook/services/payment"
)

// fakeCalendar is an in-memory calendar repository. Like the real one it
// allows each window transition only from the expected prior state, so
// the engine's concurrency behavior is observable in tests.
type fakeCalendar struct {
	mu   sync.Mutex
	days map[string]map[string]models.SlotEntry
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{days: make(map[string]map[string]models.SlotEntry)}
}

func (f *fakeCalendar) GetDay(ctx context.Context, date string) (*models.DayCalendar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, ok := f.days[date]
	if !ok || len(entries) == 0 {
		return nil, calendarRepo.ErrDayNotFound
	}
	day := &models.DayCalendar{Date: date}
	for _, e := range entries {
		day.Slots = append(day.Slots, e)
	}
	sort.Slice(day.Slots, func(i, j int) bool { return day.Slots[i].Window < day.Slots[j].Window })
	return day, nil
}

func (f *fakeCalendar) HoldSlot(ctx context.Context, date, window, bookingID string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.day(date)
	if _, occupied := entries[window]; occupied {
		return calendarRepo.ErrSlotConflict
	}
	exp := expiresAt
	entries[window] = models.SlotEntry{
		Window: window, Status: models.SlotHeld, BookingID: bookingID, ExpiresAt: &exp,
	}
	return nil
}

func (f *fakeCalendar) ConfirmSlot(ctx context.Context, date, window, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.day(date)
	e, ok := entries[window]
	if !ok || e.Status != models.SlotHeld || e.BookingID != bookingID {
		return calendarRepo.ErrSlotConflict
	}
	e.Status = models.SlotBooked
	e.ExpiresAt = nil
	entries[window] = e
	return nil
}

func (f *fakeCalendar) ReleaseHeldSlot(ctx context.Context, date, window, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.day(date)
	e, ok := entries[window]
	if !ok || e.BookingID != bookingID || e.Status != models.SlotHeld {
		return calendarRepo.ErrSlotConflict
	}
	delete(entries, window)
	return nil
}

func (f *fakeCalendar) ReleaseSlot(ctx context.Context, date, window, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.day(date)
	e, ok := entries[window]
	if !ok || e.BookingID != bookingID {
		return calendarRepo.ErrSlotConflict
	}
	delete(entries, window)
	return nil
}

func (f *fakeCalendar) BlockSlot(ctx context.Context, date, window, staffRef string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.day(date)
	if _, occupied := entries[window]; occupied {
		return calendarRepo.ErrSlotConflict
	}
	entries[window] = models.SlotEntry{Window: window, Status: models.SlotBlocked, StaffRef: staffRef}
	return nil
}

func (f *fakeCalendar) UnblockSlot(ctx context.Context, date, window string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.day(date)
	e, ok := entries[window]
	if !ok || e.Status != models.SlotBlocked {
		return calendarRepo.ErrSlotConflict
	}
	delete(entries, window)
	return nil
}

func (f *fakeCalendar) EnsureIndexes() error { return nil }

func (f *fakeCalendar) day(date string) map[string]models.SlotEntry {
	if f.days[date] == nil {
		f.days[date] = make(map[string]models.SlotEntry)
	}
	return f.days[date]
}

// entry returns a copy of the stored entry for assertions.
func (f *fakeCalendar) entry(date, window string) (models.SlotEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.days[date][window]
	return e, ok
}

// fakeBookings is an in-memory booking repository with the same guarded
// status transitions as the Mongo implementation.
type fakeBookings struct {
	mu    sync.Mutex
	items map[string]*models.Booking

	// afterExpiredScan runs after FindExpiredHeld builds its result and
	// before it returns, outside the lock. Lets tests interleave work
	// between the sweeper's scan and its writes.
	afterExpiredScan func()
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{items: make(map[string]*models.Booking)}
}

func (f *fakeBookings) Create(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *b
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeBookings) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.items {
		if b.OrderID == orderID && orderID != "" {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookings) GetByCaptureID(ctx context.Context, captureID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.items {
		if b.CaptureID == captureID && captureID != "" {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookings) SetOrderID(ctx context.Context, id, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.OrderID = orderID
	return nil
}

func (f *fakeBookings) MarkConfirmed(ctx context.Context, id, captureID string) error {
	// Mirrors the unique sparse capture id index.
	if captureID != "" {
		f.mu.Lock()
		for _, b := range f.items {
			if b.ID != id && b.CaptureID == captureID {
				f.mu.Unlock()
				return fmt.Errorf("duplicate capture id %s", captureID)
			}
		}
		f.mu.Unlock()
	}
	return f.transition(id, models.BookingHeld, func(b *models.Booking) {
		b.Status = models.BookingConfirmed
		b.CaptureID = captureID
		b.HoldExpiresAt = nil
	})
}

func (f *fakeBookings) MarkReleased(ctx context.Context, id string) error {
	return f.transition(id, models.BookingHeld, func(b *models.Booking) {
		b.Status = models.BookingReleased
		b.HoldExpiresAt = nil
	})
}

func (f *fakeBookings) MarkExpired(ctx context.Context, id string) error {
	return f.transition(id, models.BookingHeld, func(b *models.Booking) {
		b.Status = models.BookingExpired
		b.HoldExpiresAt = nil
	})
}

func (f *fakeBookings) MarkRefunded(ctx context.Context, id, refundID string, amount float64, reason string) error {
	return f.transition(id, models.BookingConfirmed, func(b *models.Booking) {
		now := time.Now().UTC()
		b.Status = models.BookingRefunded
		b.RefundID = refundID
		b.RefundAmount = amount
		b.RefundReason = reason
		b.RefundedAt = &now
	})
}

func (f *fakeBookings) transition(id, fromStatus string, apply func(*models.Booking)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok || b.Status != fromStatus {
		return bookingRepo.ErrStatusConflict
	}
	apply(b)
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeBookings) FindExpiredHeld(ctx context.Context, now time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	var out []models.Booking
	for _, b := range f.items {
		if b.Status == models.BookingHeld && b.HoldExpiresAt != nil && !b.HoldExpiresAt.After(now) {
			out = append(out, *b)
		}
	}
	f.mu.Unlock()

	if f.afterExpiredScan != nil {
		f.afterExpiredScan()
	}
	return out, nil
}

func (f *fakeBookings) List(ctx context.Context, page, limit int) ([]models.Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Booking
	for _, b := range f.items {
		all = append(all, *b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))

	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeBookings) EnsureIndexes() error { return nil }

// fakeGateway counts orders and refunds and can be told to fail.
type fakeGateway struct {
	mu          sync.Mutex
	orders      int
	refunds     int
	failOrders  bool
	failRefunds bool
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount float64, description string) (*payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failOrders {
		return nil, fmt.Errorf("gateway unavailable")
	}
	g.orders++
	id := fmt.Sprintf("order-%d", g.orders)
	return &payment.Order{ID: id, ApprovalURL: "https://pay.example/approve/" + id}, nil
}

func (g *fakeGateway) RefundCapture(ctx context.Context, captureID string, amount float64) (*payment.Refund, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failRefunds {
		return nil, fmt.Errorf("gateway unavailable")
	}
	g.refunds++
	return &payment.Refund{ID: fmt.Sprintf("refund-%d", g.refunds), Status: "succeeded"}, nil
}

// fakeDispatcher records notification calls.
type fakeDispatcher struct {
	mu        sync.Mutex
	confirmed int
	refunded  int
}

func (d *fakeDispatcher) BookingConfirmed(ctx context.Context, b *models.Booking) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirmed++
	return nil
}

func (d *fakeDispatcher) RefundProcessed(ctx context.Context, b *models.Booking) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refunded++
	return nil
}

// testNow is a Monday morning; testDate is the following Tuesday.
var testNow = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

const testDate = "2026-03-03"

func newTestEngine() (*DefaultEngine, *fakeCalendar, *fakeBookings, *fakeGateway, *fakeDispatcher) {
	cal := newFakeCalendar()
	bks := newFakeBookings()
	gw := &fakeGateway{}
	disp := &fakeDispatcher{}
	engine := &DefaultEngine{
		Calendar: cal,
		Bookings: bks,
		Gateway:  gw,
		Notifier: disp,
		Logger:   zap.NewNop(),
		HoldTTL:  15 * time.Minute,
		Location: time.UTC,
		Clock:    func() time.Time { return testNow },
	}
	return engine, cal, bks, gw, disp
}

func validRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		CustomerName:       "Jamie Fletcher",
		Email:              "jamie@example.com",
		ContactNumber:      "07700900123",
		FirstLineOfAddress: "12 Orchard Lane",
		Town:               "Sheffield",
		Postcode:           "S10 2AB",
		SelectedDate:       testDate,
		SelectedTimeSlot:   "9:00-9:45 AM",
		SelectService:      models.ServiceGutterCleaning,
		SelectHomeType:     "3 bed House",
		SelectHomeStyle:    "Terrace",
		NumberOfBedrooms:   "3",
		NumberOfStories:    "2",
		PaymentMethod:      models.PayOnSite,
	}
}
