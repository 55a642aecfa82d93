package update_appointment

import (
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/ptr"
)

// UpdateAppointmentRequest HTTP модель запроса, непереданные поля не меняются
type UpdateAppointmentRequest struct {
	ServiceIDs []string `json:"serviceIds,omitempty"`
	StartTime  *string  `json:"startTime,omitempty"`
	EndTime    *string  `json:"endTime,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	Status     *string  `json:"status,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateAppointmentRequest) ToServiceRequest() (*models.UpdateAppointmentRequest, error) {
	req := &models.UpdateAppointmentRequest{
		ServiceIDs: r.ServiceIDs,
		Notes:      r.Notes,
		Status:     r.Status,
	}

	if r.StartTime != nil {
		start, err := handlers.ParseWallClock(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = ptr.Ptr(start)
	}
	if r.EndTime != nil {
		end, err := handlers.ParseWallClock(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = ptr.Ptr(end)
	}

	return req, nil
}
