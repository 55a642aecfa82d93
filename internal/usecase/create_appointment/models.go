package create_appointment

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// Request данные новой записи, статус всегда pending
type Request struct {
	Caller     domain.Identity
	ProviderID string
	CustomerID string
	ServiceIDs []string
	StartTime  time.Time
	EndTime    time.Time
	Notes      string
}

// Response сохраненная запись
type Response struct {
	Appointment *domain.Appointment
}
