package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing the pipeline's queries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	uniqueID := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	}

	indexes := map[string][]mongo.IndexModel{
		Contracts: {
			uniqueID,
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "endDate", Value: 1}},
				Options: options.Index().SetName("status_endDate_idx"),
			},
		},
		Guests:     {uniqueID},
		Apartments: {uniqueID},
		Rooms:      {uniqueID},
		Users: {
			uniqueID,
			{
				Keys:    bson.D{{Key: "role", Value: 1}, {Key: "isActive", Value: 1}},
				Options: options.Index().SetName("role_active_idx"),
			},
		},
		Transactions: {
			uniqueID,
			{
				Keys:    bson.D{{Key: "date", Value: 1}},
				Options: options.Index().SetName("date_idx"),
			},
			{
				Keys:    bson.D{{Key: "apartmentId", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetName("apartment_date_idx"),
			},
		},
		Notifications: {
			uniqueID,
			{
				Keys:    bson.D{{Key: "createdAt", Value: 1}},
				Options: options.Index().SetName("createdAt_idx"),
			},
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("user_createdAt_idx"),
			},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
