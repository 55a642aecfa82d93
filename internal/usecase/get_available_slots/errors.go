package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается если услуга не существует или принадлежит другому мастеру
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrBusinessHoursNotFound возвращается если у мастера нет часов работы на этот день недели
	ErrBusinessHoursNotFound = errors.New("get_available_slots: business hours not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках хранилища
	ErrInternal = errors.New("get_available_slots: internal error")
)
