package storage

import "errors"

// Общие ошибки всех хранилищ, сервисы проверяют их через errors.Is
var (
	// ErrAppointmentNotFound возвращается если запись не найдена
	ErrAppointmentNotFound = errors.New("storage: appointment not found")

	// ErrStatusMismatch возвращается если при условной записи статус уже другой
	ErrStatusMismatch = errors.New("storage: appointment status changed concurrently")

	// ErrServiceNotFound возвращается если услуга не найдена
	ErrServiceNotFound = errors.New("storage: service not found")

	// ErrBusinessHoursNotFound возвращается если у мастера нет часов на этот день недели
	ErrBusinessHoursNotFound = errors.New("storage: business hours not found")

	// ErrProfileNotFound возвращается если нет профиля мастера или клиента с таким id и ролью
	ErrProfileNotFound = errors.New("storage: profile not found")

	// ErrRelationshipNotFound возвращается если связи мастера и клиента еще нет
	ErrRelationshipNotFound = errors.New("storage: relationship not found")
)
