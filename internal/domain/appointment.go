package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownStatus возвращается из ParseStatus для неизвестных статусов
var ErrUnknownStatus = errors.New("domain: unknown appointment status")

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// ActiveStatuses статусы, занимающие время
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// transitions разрешенные переходы, из completed и canceled переходов нет
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
}

// ParseStatus конвертирует строку в известный статус
func ParseStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// IsValid проверяет, что s один из четырех статусов
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// IsActive возвращает true для статусов, занимающих календарь мастера
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal возвращает true если из s нет переходов
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// CanTransition проверяет, разрешен ли переход from -> to
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment запись клиента к мастеру
type Appointment struct {
	ID         string
	ProviderID string
	CustomerID string
	ServiceIDs []string

	// Денормализованные данные
	ServiceName  string
	CustomerName string
	Price        float64

	StartTime           time.Time
	EndTime             time.Time
	Status              AppointmentStatus
	Notes               string
	CleaningTimeMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает полуоткрытый интервал [StartTime, EndTime) записи
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// Duration возвращает длительность услуг без времени уборки
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// IsActive возвращает true если запись занимает свое время
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// CanBeEdited возвращает true пока запись не в конечном статусе
func (a *Appointment) CanBeEdited() bool {
	return !a.Status.IsTerminal()
}

// Day возвращает день начала записи
func (a *Appointment) Day() time.Time {
	return TruncateToDay(a.StartTime)
}

// TruncateToDay отбрасывает время суток, сохраняя location
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay проверяет, приходятся ли a и b на один день
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayLockKey ключ календаря мастера на один день, используется для сериализации записей
func DayLockKey(providerID string, day time.Time) string {
	return providerID + ":" + day.Format(DateFormat)
}
