package businesshours

import (
	"context"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// BusinessHoursRepository хранилище недельных часов работы
type BusinessHoursRepository interface {
	GetWeek(ctx context.Context, providerID string) ([]*domain.BusinessHours, error)
	Upsert(ctx context.Context, hours *domain.BusinessHours) error
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
