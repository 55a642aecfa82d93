package booking_session

import (
	"context"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/create_appointment"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/get_available_slots"
)

// SessionStore хранилище сессий бронирования с истечением срока
type SessionStore interface {
	Save(ctx context.Context, session *domain.BookingSession) error
	Get(ctx context.Context, id string) (*domain.BookingSession, error)
	Delete(ctx context.Context, id string) error
}

// SlotCalculator доступность дня мастера
type SlotCalculator interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// AppointmentCreator создание записи
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error)
}

// ProfileRepository профили клиентов
type ProfileRepository interface {
	GetCustomer(ctx context.Context, id string) (*domain.Profile, error)
}

// CatalogRepository поиск услуг
type CatalogRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error)
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
