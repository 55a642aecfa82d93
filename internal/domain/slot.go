package domain

import "time"

// TimeSlot возможное время начала записи
type TimeSlot struct {
	Start     time.Time
	Available bool
	Selected  bool // отметка для UI, слот выбран в сессии бронирования
}
