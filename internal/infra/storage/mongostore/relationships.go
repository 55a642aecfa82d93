package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// RelationshipRepository документы истории мастер-клиент
type RelationshipRepository struct {
	coll *mongo.Collection
}

// NewRelationshipRepository создает репозиторий над коллекцией relationships
func NewRelationshipRepository(db *mongo.Database) *RelationshipRepository {
	return &RelationshipRepository{coll: db.Collection(CollectionRelationships)}
}

// Get возвращает связь мастера и клиента
func (r *RelationshipRepository) Get(ctx context.Context, providerID, customerID string) (*domain.Relationship, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var doc relationshipDocument
	err := r.coll.FindOne(ctx, bson.M{"providerId": providerID, "customerId": customerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrRelationshipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - find relationship: %v", ErrQuery, err)
	}
	return doc.toDomain(), nil
}

// RecordVisit создает или обновляет связь атомарным инкрементом
func (r *RelationshipRepository) RecordVisit(ctx context.Context, providerID, customerID string, amount float64, visitAt, now time.Time) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"providerId": providerID, "customerId": customerID}
	update := bson.M{
		"$inc":         bson.M{"visitCount": 1, "totalSpent": amount},
		"$set":         bson.M{"lastVisit": visitAt, "updatedAt": now},
		"$setOnInsert": bson.M{"_id": uuid.NewString(), "createdAt": now},
	}

	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("%w: RecordVisit - upsert relationship: %v", ErrQuery, err)
	}
	return nil
}
