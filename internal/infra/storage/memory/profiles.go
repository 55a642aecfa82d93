package memory

import (
	"context"
	"sync"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// ProfileRepository профили мастеров и клиентов в памяти процесса
type ProfileRepository struct {
	mu        sync.RWMutex
	providers map[string]domain.Profile
	customers map[string]domain.Profile
}

// NewProfileRepository создает пустой репозиторий
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		providers: make(map[string]domain.Profile),
		customers: make(map[string]domain.Profile),
	}
}

// AddProvider сохраняет профиль мастера с ролью "provider"
func (r *ProfileRepository) AddProvider(id, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[id] = domain.Profile{ID: id, Role: domain.RoleProvider, Name: name}
}

// AddCustomer сохраняет профиль клиента с ролью "customer"
func (r *ProfileRepository) AddCustomer(id, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[id] = domain.Profile{ID: id, Role: domain.RoleCustomer, Name: name}
}

func (r *ProfileRepository) GetProvider(_ context.Context, id string) (*domain.Profile, error) {
	return r.get(r.providers, id, domain.RoleProvider)
}

func (r *ProfileRepository) GetCustomer(_ context.Context, id string) (*domain.Profile, error) {
	return r.get(r.customers, id, domain.RoleCustomer)
}

func (r *ProfileRepository) get(collection map[string]domain.Profile, id string, role domain.Role) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := collection[id]
	if !ok || profile.Role != role {
		return nil, storage.ErrProfileNotFound
	}
	return &profile, nil
}
