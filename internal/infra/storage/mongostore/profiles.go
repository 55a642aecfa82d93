package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// ProfileRepository профили мастеров и клиентов, по коллекции на роль
type ProfileRepository struct {
	providers *mongo.Collection
	customers *mongo.Collection
}

// NewProfileRepository создает репозиторий над коллекциями providers и customers
func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		providers: db.Collection(CollectionProviders),
		customers: db.Collection(CollectionCustomers),
	}
}

// GetProvider возвращает профиль мастера с id и ролью "provider"
func (r *ProfileRepository) GetProvider(ctx context.Context, id string) (*domain.Profile, error) {
	return r.get(ctx, r.providers, id, domain.RoleProvider)
}

// GetCustomer возвращает профиль клиента с id и ролью "customer"
func (r *ProfileRepository) GetCustomer(ctx context.Context, id string) (*domain.Profile, error) {
	return r.get(ctx, r.customers, id, domain.RoleCustomer)
}

func (r *ProfileRepository) get(ctx context.Context, coll *mongo.Collection, id string, role domain.Role) (*domain.Profile, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var doc profileDocument
	err := coll.FindOne(ctx, bson.M{"_id": id, "role": string(role)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s - find profile: %v", ErrQuery, coll.Name(), err)
	}

	return &domain.Profile{ID: doc.ID, Role: domain.Role(doc.Role), Name: doc.Name}, nil
}
