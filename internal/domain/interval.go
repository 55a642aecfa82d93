package domain

import "time"

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал заданной длины
func NewInterval(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

// IsValid возвращает true если End строго позже Start
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Overlaps проверяет, пересекаются ли два полуоткрытых интервала.
// Соприкасающиеся интервалы (a.End == b.Start) не пересекаются.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// FindConflict возвращает первую активную запись, пересекающую candidate.
// Запись с excludeID пропускается, изменение не конфликтует само с собой.
func FindConflict(candidate Interval, existing []*Appointment, excludeID string) *Appointment {
	for _, appt := range existing {
		if appt == nil || !appt.IsActive() {
			continue
		}
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		if Overlaps(candidate, appt.Interval()) {
			return appt
		}
	}
	return nil
}
