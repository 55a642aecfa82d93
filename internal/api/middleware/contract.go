package middleware

import (
	"context"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// IdentityResolver определяет пользователя по заголовку X-User-ID
type IdentityResolver interface {
	Resolve(ctx context.Context, callerID string) (domain.Identity, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
