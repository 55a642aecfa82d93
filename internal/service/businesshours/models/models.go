package models

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/types"
)

// DayHours часы работы одного дня недели, 0 = воскресенье
type DayHours struct {
	DayOfWeek   int    `json:"dayOfWeek"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
	IsClosed    bool   `json:"isClosed"`
}

// UpsertRequest заменяет часы работы перечисленных дней
type UpsertRequest struct {
	ProviderID string     `json:"-"`
	Days       []DayHours `json:"days"`
}

// WeekResponse сохраненные часы мастера по дням недели
type WeekResponse struct {
	ProviderID string     `json:"providerId"`
	Days       []DayHours `json:"days"`
}

// FromDomain конвертирует domain модель в DTO
func FromDomain(providerID string, week []*domain.BusinessHours) *WeekResponse {
	days := make([]DayHours, 0, len(week))
	for _, h := range week {
		days = append(days, DayHours{
			DayOfWeek:   int(h.DayOfWeek),
			OpeningTime: h.OpeningTime.String(),
			ClosingTime: h.ClosingTime.String(),
			IsClosed:    h.IsClosed(),
		})
	}
	return &WeekResponse{ProviderID: providerID, Days: days}
}

// ToDomain конвертирует один день запроса, время проверяет сервис
func (d DayHours) ToDomain(providerID string, updatedAt time.Time) *domain.BusinessHours {
	return &domain.BusinessHours{
		ProviderID:  providerID,
		DayOfWeek:   time.Weekday(d.DayOfWeek),
		OpeningTime: types.TimeString(d.OpeningTime),
		ClosingTime: types.TimeString(d.ClosingTime),
		UpdatedAt:   updatedAt,
	}
}
