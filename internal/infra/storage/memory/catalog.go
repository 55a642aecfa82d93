package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// CatalogRepository каталог услуг в памяти процесса
type CatalogRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Service
}

// NewCatalogRepository создает пустой каталог
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{items: make(map[string]domain.Service)}
}

// Add сохраняет или заменяет услугу
func (r *CatalogRepository) Add(svc domain.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[svc.ID] = svc
}

func (r *CatalogRepository) GetByIDs(_ context.Context, ids []string) ([]*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := r.items[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%s", storage.ErrServiceNotFound, id)
		}
		result = append(result, &svc)
	}
	return result, nil
}

func (r *CatalogRepository) GetByProvider(_ context.Context, providerID string) ([]*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Service, 0)
	for _, svc := range r.items {
		if svc.ProviderID == providerID {
			s := svc
			result = append(result, &s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
