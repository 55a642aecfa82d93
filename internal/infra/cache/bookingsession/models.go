package bookingsession

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// sessionDocument JSON представление сессии в Redis
type sessionDocument struct {
	ID                 string     `json:"id"`
	CallerID           string     `json:"callerId"`
	CallerRole         string     `json:"callerRole"`
	CustomerID         string     `json:"customerId"`
	CustomerName       string     `json:"customerName,omitempty"`
	SelectedProviderID string     `json:"selectedProviderId,omitempty"`
	SelectedServiceIDs []string   `json:"selectedServiceIds,omitempty"`
	SelectedSlot       *time.Time `json:"selectedSlot,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	ExpiresAt          time.Time  `json:"expiresAt"`
}

func toDocument(s *domain.BookingSession) sessionDocument {
	return sessionDocument{
		ID:                 s.ID,
		CallerID:           s.CallerID,
		CallerRole:         string(s.CallerRole),
		CustomerID:         s.CustomerID,
		CustomerName:       s.CustomerName,
		SelectedProviderID: s.SelectedProviderID,
		SelectedServiceIDs: s.SelectedServiceIDs,
		SelectedSlot:       s.SelectedSlot,
		Notes:              s.Notes,
		ExpiresAt:          s.ExpiresAt,
	}
}

func (d sessionDocument) toDomain() *domain.BookingSession {
	return &domain.BookingSession{
		ID:                 d.ID,
		CallerID:           d.CallerID,
		CallerRole:         domain.Role(d.CallerRole),
		CustomerID:         d.CustomerID,
		CustomerName:       d.CustomerName,
		SelectedProviderID: d.SelectedProviderID,
		SelectedServiceIDs: d.SelectedServiceIDs,
		SelectedSlot:       d.SelectedSlot,
		Notes:              d.Notes,
		ExpiresAt:          d.ExpiresAt,
	}
}
