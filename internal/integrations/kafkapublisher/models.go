package kafkapublisher

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
)

// appointmentPayload JSON тело публикуемого события
type appointmentPayload struct {
	EventID        string    `json:"eventId"`
	EventType      string    `json:"eventType"`
	OccurredAt     time.Time `json:"occurredAt"`
	AppointmentID  string    `json:"appointmentId"`
	ProviderID     string    `json:"providerId"`
	CustomerID     string    `json:"customerId"`
	ServiceIDs     []string  `json:"serviceIds"`
	ServiceName    string    `json:"serviceName"`
	CustomerName   string    `json:"customerName"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
}

func toPayload(e events.Event) appointmentPayload {
	a := e.Appointment
	return appointmentPayload{
		EventID:        e.ID,
		EventType:      string(e.Type),
		OccurredAt:     e.OccurredAt,
		AppointmentID:  a.ID,
		ProviderID:     a.ProviderID,
		CustomerID:     a.CustomerID,
		ServiceIDs:     a.ServiceIDs,
		ServiceName:    a.ServiceName,
		CustomerName:   a.CustomerName,
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		Status:         string(a.Status),
		PreviousStatus: string(e.PreviousStatus),
	}
}
