package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The orderId and captureId indexes are unique so a gateway order or
// capture resolves to at most one booking; sparse because pay-on-site
// bookings never get either.
func (r *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("unique_order_id"),
		},
		{
			Keys:    bson.D{{Key: "captureId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("unique_capture_id"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "holdExpiresAt", Value: 1}},
			Options: options.Index().SetName("status_hold_expiry_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
