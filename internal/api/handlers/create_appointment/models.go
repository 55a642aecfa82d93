package create_appointment

import (
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	createAppointment "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP модель запроса, время локальное без смещения
type CreateAppointmentRequest struct {
	ProviderID string   `json:"providerId"`
	CustomerID string   `json:"customerId"`
	ServiceIDs []string `json:"serviceIds"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	Notes      string   `json:"notes"`
}

// ToUseCaseRequest парсит время и добавляет пользователя
func (r *CreateAppointmentRequest) ToUseCaseRequest(caller domain.Identity) (*createAppointment.Request, error) {
	start, err := handlers.ParseWallClock(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseWallClock(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Caller:     caller,
		ProviderID: r.ProviderID,
		CustomerID: r.CustomerID,
		ServiceIDs: r.ServiceIDs,
		StartTime:  start,
		EndTime:    end,
		Notes:      r.Notes,
	}, nil
}
