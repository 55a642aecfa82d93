package update_appointment

import (
	"context"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
)

type AppointmentService interface {
	UpdateAppointment(ctx context.Context, caller domain.Identity, id string, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
