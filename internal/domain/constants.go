package domain

// Значения по умолчанию
const (
	DefaultSlotGranularityMinutes = 15
	DefaultCleaningTimeMinutes    = 15
	DefaultIdentityTimeoutSeconds = 5
)

// Константы бизнес-валидации
const (
	MaxNotesLength            = 500
	MaxServicesPerAppointment = 10
	MinutesPerDay             = 24 * 60
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
