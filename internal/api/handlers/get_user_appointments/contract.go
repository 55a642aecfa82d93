package get_user_appointments

import (
	"context"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByUserAndDate(ctx context.Context, caller domain.Identity, req *models.UserAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
