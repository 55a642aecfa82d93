package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// AppointmentRepository хранилище записей в памяти, используется драйвером memory и тестами
type AppointmentRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Appointment
}

// NewAppointmentRepository создает пустой репозиторий
func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{items: make(map[string]*domain.Appointment)}
}

func (r *AppointmentRepository) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	if appt.UpdatedAt.IsZero() {
		appt.UpdatedAt = appt.CreatedAt
	}
	r.items[appt.ID] = cloneAppointment(appt)
	return appt, nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.items[id]
	if !ok {
		return nil, storage.ErrAppointmentNotFound
	}
	return cloneAppointment(appt), nil
}

func (r *AppointmentRepository) GetByProvider(_ context.Context, providerID string) ([]*domain.Appointment, error) {
	return r.filter(func(a *domain.Appointment) bool { return a.ProviderID == providerID }, true), nil
}

func (r *AppointmentRepository) GetByCustomer(_ context.Context, customerID string) ([]*domain.Appointment, error) {
	return r.filter(func(a *domain.Appointment) bool { return a.CustomerID == customerID }, true), nil
}

func (r *AppointmentRepository) GetByProviderForDay(
	_ context.Context,
	providerID string,
	day time.Time,
	statuses []domain.AppointmentStatus,
) ([]*domain.Appointment, error) {
	return r.filter(func(a *domain.Appointment) bool {
		return a.ProviderID == providerID && domain.SameDay(a.StartTime, day) && hasStatus(a.Status, statuses)
	}, false), nil
}

func (r *AppointmentRepository) GetByCustomerForDay(_ context.Context, customerID string, day time.Time) ([]*domain.Appointment, error) {
	return r.filter(func(a *domain.Appointment) bool {
		return a.CustomerID == customerID && domain.SameDay(a.StartTime, day)
	}, false), nil
}

func (r *AppointmentRepository) Update(_ context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[appt.ID]
	if !ok || !stored.IsActive() {
		return storage.ErrStatusMismatch
	}

	stored.ServiceIDs = append([]string(nil), appt.ServiceIDs...)
	stored.ServiceName = appt.ServiceName
	stored.Price = appt.Price
	stored.StartTime = appt.StartTime
	stored.EndTime = appt.EndTime
	stored.Notes = appt.Notes
	stored.UpdatedAt = appt.UpdatedAt
	return nil
}

func (r *AppointmentRepository) UpdateStatus(_ context.Context, id string, from, to domain.AppointmentStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok || stored.Status != from {
		return storage.ErrStatusMismatch
	}
	stored.Status = to
	stored.UpdatedAt = updatedAt
	return nil
}

func (r *AppointmentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return storage.ErrAppointmentNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *AppointmentRepository) filter(match func(*domain.Appointment) bool, newestFirst bool) []*domain.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, appt := range r.items {
		if match(appt) {
			result = append(result, cloneAppointment(appt))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if newestFirst {
			return result[i].StartTime.After(result[j].StartTime)
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result
}

func hasStatus(status domain.AppointmentStatus, statuses []domain.AppointmentStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func cloneAppointment(a *domain.Appointment) *domain.Appointment {
	c := *a
	c.ServiceIDs = append([]string(nil), a.ServiceIDs...)
	return &c
}
