package get_available_slots

import (
	"strings"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	getAvailableSlots "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	ProviderID      string          `json:"providerId"`
	Date            string          `json:"date"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot одно возможное время начала
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected,omitempty"`
}

// FromUseCaseResponse конвертирует результат use case
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		ProviderID:      resp.ProviderID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           FromDomainSlots(resp.Slots),
	}
}

// FromDomainSlots конвертирует слоты, никогда не возвращает nil
func FromDomainSlots(list []domain.TimeSlot) []AvailableSlot {
	slots := make([]AvailableSlot, len(list))
	for i, slot := range list {
		slots[i] = AvailableSlot{
			StartTime: handlers.FormatWallClock(slot.Start),
			Available: slot.Available,
			Selected:  slot.Selected,
		}
	}
	return slots
}

// ToUseCaseRequest формирует запрос к use case из query параметров.
// Услуги передаются повторяющимся serviceId или списком через запятую.
func ToUseCaseRequest(providerID, dateStr string, serviceParams []string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProviderID: providerID,
		ServiceIDs: SplitIDs(serviceParams),
		Date:       date,
	}, nil
}

// SplitIDs объединяет повторяющиеся и перечисленные через запятую id
func SplitIDs(params []string) []string {
	var ids []string
	for _, p := range params {
		for _, id := range strings.Split(p, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
