package domain

import "time"

// BookingSession состояние бронирования между поиском слота и подтверждением
type BookingSession struct {
	ID                 string
	CallerID           string
	CallerRole         Role
	CustomerID         string
	CustomerName       string
	SelectedProviderID string
	SelectedServiceIDs []string
	SelectedSlot       *time.Time
	Notes              string
	ExpiresAt          time.Time
}

// IsExpired проверяет, истек ли TTL сессии к моменту now
func (s *BookingSession) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// IsReadyToConfirm возвращает true когда выбор завершен
func (s *BookingSession) IsReadyToConfirm() bool {
	return s.SelectedProviderID != "" && len(s.SelectedServiceIDs) > 0 && s.SelectedSlot != nil
}
