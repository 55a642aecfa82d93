package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes создает индексы, используемые репозиториями пакета
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	plan := map[string][]mongo.IndexModel{
		CollectionAppointments: {
			{
				Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "startTime", Value: 1}},
				Options: options.Index().SetName("provider_start_idx"),
			},
			{
				Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "startTime", Value: 1}},
				Options: options.Index().SetName("customer_start_idx"),
			},
		},
		CollectionBusinessHours: {
			{
				Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("provider_day_unique"),
			},
		},
		CollectionServices: {
			{
				Keys:    bson.D{{Key: "providerId", Value: 1}},
				Options: options.Index().SetName("provider_idx"),
			},
		},
		CollectionRelationships: {
			{
				Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "customerId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("provider_customer_unique"),
			},
		},
	}

	for collection, models := range plan {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongostore: create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
