package booking_session

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// StartRequest открывает сессию. CustomerID обязателен, если мастер записывает клиента.
type StartRequest struct {
	CustomerID string
}

// SelectServicesRequest выбор мастера и услуг, сбрасывает выбранный слот
type SelectServicesRequest struct {
	ProviderID string
	ServiceIDs []string
}

// SelectSlotRequest выбор времени начала
type SelectSlotRequest struct {
	Start time.Time
	Notes string
}

// SlotsResponse доступность дня с отмеченным выбранным слотом
type SlotsResponse struct {
	Session *domain.BookingSession
	Slots   []domain.TimeSlot
}
