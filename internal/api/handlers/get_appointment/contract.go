package get_appointment

import (
	"context"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, caller domain.Identity, id string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
