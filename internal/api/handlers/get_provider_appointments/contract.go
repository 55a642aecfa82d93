package get_provider_appointments

import (
	"context"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByProvider(ctx context.Context, caller domain.Identity, providerID string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
