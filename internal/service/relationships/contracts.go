package relationships

import (
	"context"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// RelationshipRepository хранилище связей мастер-клиент
type RelationshipRepository interface {
	Get(ctx context.Context, providerID, customerID string) (*domain.Relationship, error)
	RecordVisit(ctx context.Context, providerID, customerID string, amount float64, visitAt, now time.Time) error
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
