package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// CatalogRepository услуги мастеров
type CatalogRepository struct {
	coll *mongo.Collection
}

// NewCatalogRepository создает репозиторий над коллекцией services
func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{coll: db.Collection(CollectionServices)}
}

// GetByIDs возвращает услуги в порядке ids
func (r *CatalogRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}

	found, err := r.find(ctx, "GetByIDs", bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	result := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%s", storage.ErrServiceNotFound, id)
		}
		result = append(result, svc)
	}
	return result, nil
}

// GetByProvider возвращает каталог услуг мастера
func (r *CatalogRepository) GetByProvider(ctx context.Context, providerID string) ([]*domain.Service, error) {
	return r.find(ctx, "GetByProvider", bson.M{"providerId": providerID})
}

func (r *CatalogRepository) find(ctx context.Context, op string, filter bson.M) ([]*domain.Service, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: %s - find services: %v", ErrQuery, op, err)
	}
	defer cursor.Close(ctx)

	var docs []serviceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s - decode services: %v", ErrDecode, op, err)
	}

	services := make([]*domain.Service, 0, len(docs))
	for _, doc := range docs {
		services = append(services, doc.toDomain())
	}
	return services, nil
}
