package get_business_hours

import (
	"context"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/businesshours/models"
)

type BusinessHoursService interface {
	GetWeek(ctx context.Context, providerID string) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
