package delete_appointment

import (
	"context"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

type AppointmentService interface {
	Delete(ctx context.Context, caller domain.Identity, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
