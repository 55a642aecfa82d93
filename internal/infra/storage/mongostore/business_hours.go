package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// BusinessHoursRepository часы работы, документ на мастера и день недели
type BusinessHoursRepository struct {
	coll *mongo.Collection
}

// NewBusinessHoursRepository создает репозиторий над коллекцией business_hours
func NewBusinessHoursRepository(db *mongo.Database) *BusinessHoursRepository {
	return &BusinessHoursRepository{coll: db.Collection(CollectionBusinessHours)}
}

// GetForDay возвращает часы работы мастера на день недели
func (r *BusinessHoursRepository) GetForDay(ctx context.Context, providerID string, day time.Weekday) (*domain.BusinessHours, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var doc businessHoursDocument
	err := r.coll.FindOne(ctx, bson.M{"providerId": providerID, "dayOfWeek": int(day)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrBusinessHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - find hours: %v", ErrQuery, err)
	}
	return doc.toDomain(), nil
}

// GetWeek возвращает все настроенные дни мастера, начиная с воскресенья
func (r *BusinessHoursRepository) GetWeek(ctx context.Context, providerID string) ([]*domain.BusinessHours, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - find hours: %v", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	var docs []businessHoursDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - decode hours: %v", ErrDecode, err)
	}

	week := make([]*domain.BusinessHours, 0, len(docs))
	for _, doc := range docs {
		week = append(week, doc.toDomain())
	}
	return week, nil
}

// Upsert создает или заменяет часы работы дня недели
func (r *BusinessHoursRepository) Upsert(ctx context.Context, hours *domain.BusinessHours) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"providerId": hours.ProviderID, "dayOfWeek": int(hours.DayOfWeek)}
	update := bson.M{"$set": bson.M{
		"openingTime": hours.OpeningTime.String(),
		"closingTime": hours.ClosingTime.String(),
		"updatedAt":   hours.UpdatedAt,
	}}

	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("%w: Upsert - upsert hours: %v", ErrQuery, err)
	}
	return nil
}
