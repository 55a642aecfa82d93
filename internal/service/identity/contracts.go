package identity

import (
	"context"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// ProfileRepository поиск мастеров и клиентов по id
type ProfileRepository interface {
	GetProvider(ctx context.Context, id string) (*domain.Profile, error)
	GetCustomer(ctx context.Context, id string) (*domain.Profile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
