package appointments

import (
	"context"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
)

// AppointmentRepository хранилище записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetByProvider(ctx context.Context, providerID string) ([]*domain.Appointment, error)
	GetByCustomer(ctx context.Context, customerID string) ([]*domain.Appointment, error)
	GetByProviderForDay(ctx context.Context, providerID string, day time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByCustomerForDay(ctx context.Context, customerID string, day time.Time) ([]*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
	UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// CatalogRepository поиск услуг при изменении состава услуг
type CatalogRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error)
}

// SlotLocker сериализует проверки пересечений одного мастера на один день
type SlotLocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// EventPublisher доставляет события жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Metrics доменные счетчики
type Metrics interface {
	IncAppointmentTransitions(to string)
	IncAppointmentConflicts(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
