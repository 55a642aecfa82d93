package booking_session

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/get_available_slots"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// StartRequest тело POST /booking-sessions
type StartRequest struct {
	CustomerID string `json:"customerId"`
}

// SelectServicesRequest тело PUT /booking-sessions/{id}/services
type SelectServicesRequest struct {
	ProviderID string   `json:"providerId"`
	ServiceIDs []string `json:"serviceIds"`
}

// SelectSlotRequest тело PUT /booking-sessions/{id}/slot
type SelectSlotRequest struct {
	StartTime string `json:"startTime"`
	Notes     string `json:"notes"`
}

// SessionResponse состояние сессии бронирования
type SessionResponse struct {
	ID                 string    `json:"id"`
	CustomerID         string    `json:"customerId"`
	CustomerName       string    `json:"customerName"`
	SelectedProviderID string    `json:"selectedProviderId,omitempty"`
	SelectedServiceIDs []string  `json:"selectedServiceIds"`
	SelectedSlot       *string   `json:"selectedSlot,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	ExpiresAt          time.Time `json:"expiresAt"`
}

// SlotsResponse доступность дня в рамках сессии
type SlotsResponse struct {
	Session *SessionResponse                    `json:"session"`
	Slots   []get_available_slots.AvailableSlot `json:"slots"`
}

func FromDomainSession(s *domain.BookingSession) *SessionResponse {
	resp := &SessionResponse{
		ID:                 s.ID,
		CustomerID:         s.CustomerID,
		CustomerName:       s.CustomerName,
		SelectedProviderID: s.SelectedProviderID,
		SelectedServiceIDs: s.SelectedServiceIDs,
		Notes:              s.Notes,
		ExpiresAt:          s.ExpiresAt,
	}
	if resp.SelectedServiceIDs == nil {
		resp.SelectedServiceIDs = []string{}
	}
	if s.SelectedSlot != nil {
		slot := handlers.FormatWallClock(*s.SelectedSlot)
		resp.SelectedSlot = &slot
	}
	return resp
}
