package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// Type тип события жизненного цикла записи
type Type string

const (
	AppointmentCreated       Type = "appointment.created"
	AppointmentUpdated       Type = "appointment.updated"
	AppointmentStatusChanged Type = "appointment.status_changed"
	AppointmentDeleted       Type = "appointment.deleted"
)

// Event публикуется после успешной записи в хранилище
type Event struct {
	ID             string
	Type           Type
	Appointment    domain.Appointment
	PreviousStatus domain.AppointmentStatus
	OccurredAt     time.Time
}

// New создает событие с копией appt
func New(eventType Type, appt *domain.Appointment, occurredAt time.Time) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		Appointment: *appt,
		OccurredAt:  occurredAt,
	}
}

// StatusChanged создает событие AppointmentStatusChanged
func StatusChanged(appt *domain.Appointment, previous domain.AppointmentStatus, occurredAt time.Time) Event {
	e := New(AppointmentStatusChanged, appt, occurredAt)
	e.PreviousStatus = previous
	return e
}
