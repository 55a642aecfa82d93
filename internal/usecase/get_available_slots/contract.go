package get_available_slots

import (
	"context"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// AppointmentRepository запросы записей для отметки занятых слотов
type AppointmentRepository interface {
	GetByProviderForDay(ctx context.Context, providerID string, day time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// BusinessHoursRepository часы работы по дням недели
type BusinessHoursRepository interface {
	GetForDay(ctx context.Context, providerID string, day time.Weekday) (*domain.BusinessHours, error)
}

// CatalogRepository поиск услуг
type CatalogRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
