package get_available_slots

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// generateSlots идет от открытия с шагом granularity, пока запись длительностью duration
// заканчивается не позже закрытия
func generateSlots(window domain.Interval, duration, granularity time.Duration) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	if duration <= 0 || granularity <= 0 {
		return slots
	}

	latestStart := window.End.Add(-duration)
	for start := window.Start; !start.After(latestStart); start = start.Add(granularity) {
		slots = append(slots, domain.TimeSlot{Start: start, Available: true})
	}
	return slots
}

// markOccupied выставляет Available в false для слотов, пересекающихся с активной записью.
// Соприкасающиеся интервалы не пересекаются.
func markOccupied(slots []domain.TimeSlot, duration time.Duration, appointments []*domain.Appointment) {
	for i := range slots {
		candidate := domain.NewInterval(slots[i].Start, duration)
		if domain.FindConflict(candidate, appointments, "") != nil {
			slots[i].Available = false
		}
	}
}

// markSelected отмечает слот, начинающийся в selected
func markSelected(slots []domain.TimeSlot, selected *time.Time) {
	if selected == nil {
		return
	}
	for i := range slots {
		if slots[i].Start.Equal(*selected) {
			slots[i].Selected = true
		}
	}
}

// totalDuration суммирует длительности услуг. ok равен false, если у какой-то услуги длительность не положительна.
func totalDuration(services []*domain.Service) (total time.Duration, ok bool) {
	minutes := 0
	for _, s := range services {
		if s.DurationMinutes <= 0 {
			return 0, false
		}
		minutes += s.DurationMinutes
	}
	return time.Duration(minutes) * time.Minute, true
}
