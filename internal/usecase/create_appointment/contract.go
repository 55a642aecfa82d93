package create_appointment

import (
	"context"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
)

// AppointmentRepository хранилище записей для проверки и вставки
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByProviderForDay(ctx context.Context, providerID string, day time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// CatalogRepository поиск услуг
type CatalogRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error)
}

// ProfileRepository профили клиентов для денормализованного имени
type ProfileRepository interface {
	GetCustomer(ctx context.Context, id string) (*domain.Profile, error)
}

// SlotLocker сериализует записи одного мастера на один день
type SlotLocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// EventPublisher доставляет события, ошибки не возвращаются вызывающему
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Metrics доменные счетчики
type Metrics interface {
	IncAppointmentsCreated(role string)
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
