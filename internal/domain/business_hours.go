package domain

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/types"
)

// BusinessHours часы работы мастера на один день недели.
// OpeningTime равное ClosingTime означает выходной.
type BusinessHours struct {
	ProviderID  string
	DayOfWeek   time.Weekday
	OpeningTime types.TimeString
	ClosingTime types.TimeString
	UpdatedAt   time.Time
}

// IsClosed возвращает true если мастер не работает в этот день
func (h *BusinessHours) IsClosed() bool {
	return h.OpeningTime.Equal(h.ClosingTime)
}

// Window возвращает моменты открытия и закрытия на дату date
func (h *BusinessHours) Window(date time.Time) (Interval, error) {
	start, err := h.OpeningTime.OnDate(date)
	if err != nil {
		return Interval{}, err
	}
	end, err := h.ClosingTime.OnDate(date)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}
