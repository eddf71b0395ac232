package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gutterbook/database"
	"gutterbook/models"
)

// MongoCalendarRepo implements CalendarRepository using MongoDB. A day is
// one document; a free window simply has no entry in the slots array, so
// every transition below is one UpdateOne whose filter encodes the expected
// prior state and whose matched/modified count reports the outcome.
type MongoCalendarRepo struct {
	coll *mongo.Collection
}

// NewMongoCalendarRepo constructs a new instance of MongoCalendarRepo.
func NewMongoCalendarRepo() *MongoCalendarRepo {
	db := database.MongoClient.Database(database.DBName)
	return &MongoCalendarRepo{coll: db.Collection("day_calendars")}
}

// GetDay retrieves the calendar document for a date.
func (r *MongoCalendarRepo) GetDay(ctx context.Context, date string) (*models.DayCalendar, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var day models.DayCalendar
	if err := r.coll.FindOne(ctx, bson.M{"date": date}).Decode(&day); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("error fetching day calendar for %s: %w", date, err)
	}
	return &day, nil
}

// ensureDay lazily creates the day document. The unique index on date makes
// concurrent upserts safe; a duplicate key error means another caller won
// the creation race, which is fine.
func (r *MongoCalendarRepo) ensureDay(ctx context.Context, date string) error {
	now := time.Now().UTC()
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"date": date},
		bson.M{"$setOnInsert": bson.M{
			"date":      date,
			"slots":     []models.SlotEntry{},
			"createdAt": now,
			"updatedAt": now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("error ensuring day calendar for %s: %w", date, err)
	}
	return nil
}

// occupy pushes an entry for a window, guarded on the window having no
// entry at the moment of the write.
func (r *MongoCalendarRepo) occupy(ctx context.Context, date string, entry models.SlotEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.ensureDay(ctx, date); err != nil {
		return err
	}

	filter := bson.M{
		"date":         date,
		"slots.window": bson.M{"$ne": entry.Window},
	}
	update := bson.M{
		"$push": bson.M{"slots": entry},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error occupying slot %s %s: %w", date, entry.Window, err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotConflict
	}
	return nil
}

func (r *MongoCalendarRepo) HoldSlot(ctx context.Context, date, window, bookingID string, expiresAt time.Time) error {
	return r.occupy(ctx, date, models.SlotEntry{
		Window:    window,
		Status:    models.SlotHeld,
		BookingID: bookingID,
		ExpiresAt: &expiresAt,
	})
}

func (r *MongoCalendarRepo) ConfirmSlot(ctx context.Context, date, window, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date": date,
		"slots": bson.M{"$elemMatch": bson.M{
			"window":    window,
			"bookingId": bookingID,
			"status":    models.SlotHeld,
		}},
	}
	update := bson.M{
		"$set":   bson.M{"slots.$.status": models.SlotBooked, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"slots.$.expiresAt": ""},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error confirming slot %s %s: %w", date, window, err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotConflict
	}
	return nil
}

func (r *MongoCalendarRepo) ReleaseHeldSlot(ctx context.Context, date, window, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date}
	update := bson.M{
		"$pull": bson.M{"slots": bson.M{
			"window":    window,
			"bookingId": bookingID,
			"status":    models.SlotHeld,
		}},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error releasing held slot %s %s: %w", date, window, err)
	}
	if res.ModifiedCount == 0 {
		return ErrSlotConflict
	}
	return nil
}

func (r *MongoCalendarRepo) ReleaseSlot(ctx context.Context, date, window, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date}
	update := bson.M{
		"$pull": bson.M{"slots": bson.M{"window": window, "bookingId": bookingID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error releasing slot %s %s: %w", date, window, err)
	}
	if res.ModifiedCount == 0 {
		return ErrSlotConflict
	}
	return nil
}

func (r *MongoCalendarRepo) BlockSlot(ctx context.Context, date, window, staffRef string) error {
	return r.occupy(ctx, date, models.SlotEntry{
		Window:   window,
		Status:   models.SlotBlocked,
		StaffRef: staffRef,
	})
}

func (r *MongoCalendarRepo) UnblockSlot(ctx context.Context, date, window string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date}
	update := bson.M{
		"$pull": bson.M{"slots": bson.M{"window": window, "status": models.SlotBlocked}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error unblocking slot %s %s: %w", date, window, err)
	}
	if res.ModifiedCount == 0 {
		return ErrSlotConflict
	}
	return nil
}
