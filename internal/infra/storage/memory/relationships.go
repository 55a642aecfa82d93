package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

type pairKey struct {
	providerID string
	customerID string
}

// RelationshipRepository история мастер-клиент в памяти процесса
type RelationshipRepository struct {
	mu    sync.Mutex
	items map[pairKey]domain.Relationship
}

// NewRelationshipRepository создает пустой репозиторий
func NewRelationshipRepository() *RelationshipRepository {
	return &RelationshipRepository{items: make(map[pairKey]domain.Relationship)}
}

func (r *RelationshipRepository) Get(_ context.Context, providerID, customerID string) (*domain.Relationship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rel, ok := r.items[pairKey{providerID, customerID}]
	if !ok {
		return nil, storage.ErrRelationshipNotFound
	}
	return &rel, nil
}

func (r *RelationshipRepository) RecordVisit(_ context.Context, providerID, customerID string, amount float64, visitAt, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{providerID, customerID}
	rel, ok := r.items[key]
	if !ok {
		rel = domain.Relationship{
			ID:         uuid.NewString(),
			ProviderID: providerID,
			CustomerID: customerID,
			CreatedAt:  now,
		}
	}

	rel.VisitCount++
	rel.TotalSpent += amount
	rel.LastVisit = visitAt
	rel.UpdatedAt = now
	r.items[key] = rel
	return nil
}
