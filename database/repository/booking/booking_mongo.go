package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() *MongoBookingRepo {
	db := database.MongoClient.Database(database.DBName)
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoBookingRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"orderId": orderID})
}

func (r *MongoBookingRepo) GetByCaptureID(ctx context.Context, captureID string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"captureId": captureID})
}

func (r *MongoBookingRepo) SetOrderID(ctx context.Context, id, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"orderId": orderID, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error setting order id on booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// transition applies set/unset to a booking, guarded on its current status.
func (r *MongoBookingRepo) transition(ctx context.Context, id, fromStatus string, set bson.M, unset bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "status": fromStatus}, update)
	if err != nil {
		return fmt.Errorf("error transitioning booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *MongoBookingRepo) MarkConfirmed(ctx context.Context, id, captureID string) error {
	// Pay-on-site confirmations carry no capture id; omitting the field
	// keeps them out of the sparse unique capture id index.
	set := bson.M{"status": models.BookingConfirmed}
	if captureID != "" {
		set["captureId"] = captureID
	}
	return r.transition(ctx, id, models.BookingHeld, set, bson.M{"holdExpiresAt": ""})
}

func (r *MongoBookingRepo) MarkReleased(ctx context.Context, id string) error {
	return r.transition(ctx, id, models.BookingHeld,
		bson.M{"status": models.BookingReleased},
		bson.M{"holdExpiresAt": ""},
	)
}

func (r *MongoBookingRepo) MarkExpired(ctx context.Context, id string) error {
	return r.transition(ctx, id, models.BookingHeld,
		bson.M{"status": models.BookingExpired},
		bson.M{"holdExpiresAt": ""},
	)
}

func (r *MongoBookingRepo) MarkRefunded(ctx context.Context, id, refundID string, amount float64, reason string) error {
	return r.transition(ctx, id, models.BookingConfirmed,
		bson.M{
			"status":       models.BookingRefunded,
			"refundId":     refundID,
			"refundAmount": amount,
			"refundReason": reason,
			"refundedAt":   time.Now().UTC(),
		},
		nil,
	)
}

func (r *MongoBookingRepo) FindExpiredHeld(ctx context.Context, now time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":        models.BookingHeld,
		"holdExpiresAt": bson.M{"$lte": now},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding expired holds: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding expired holds: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) List(ctx context.Context, page, limit int) ([]models.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, total, nil
}
