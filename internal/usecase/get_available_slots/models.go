package get_available_slots

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// Request запрос доступности мастера на один день
type Request struct {
	ProviderID    string
	ServiceIDs    []string   // услуги идут подряд, длина слота равна сумме длительностей
	Date          time.Time  // используется только дата
	SelectedStart *time.Time // отмечает совпадающий слот как выбранный
}

// Response возможное время начала по возрастанию
type Response struct {
	ProviderID      string
	Date            time.Time
	DurationMinutes int
	Slots           []domain.TimeSlot
}
