package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

type hoursKey struct {
	providerID string
	day        time.Weekday
}

// BusinessHoursRepository часы работы в памяти процесса
type BusinessHoursRepository struct {
	mu    sync.RWMutex
	items map[hoursKey]domain.BusinessHours
}

// NewBusinessHoursRepository создает пустой репозиторий
func NewBusinessHoursRepository() *BusinessHoursRepository {
	return &BusinessHoursRepository{items: make(map[hoursKey]domain.BusinessHours)}
}

func (r *BusinessHoursRepository) GetForDay(_ context.Context, providerID string, day time.Weekday) (*domain.BusinessHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hours, ok := r.items[hoursKey{providerID, day}]
	if !ok {
		return nil, storage.ErrBusinessHoursNotFound
	}
	return &hours, nil
}

func (r *BusinessHoursRepository) GetWeek(_ context.Context, providerID string) ([]*domain.BusinessHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	week := make([]*domain.BusinessHours, 0, 7)
	for key, hours := range r.items {
		if key.providerID == providerID {
			h := hours
			week = append(week, &h)
		}
	}
	sort.Slice(week, func(i, j int) bool { return week[i].DayOfWeek < week[j].DayOfWeek })
	return week, nil
}

func (r *BusinessHoursRepository) Upsert(_ context.Context, hours *domain.BusinessHours) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[hoursKey{hours.ProviderID, hours.DayOfWeek}] = *hours
	return nil
}
