package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается если запись не найдена или недоступна пользователю
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrAccessDenied возвращается при отсутствии прав на изменение
	ErrAccessDenied = errors.New("appointments: access denied")

	// ErrInvalidTransition возвращается если переход запрещен или запись
	// параллельно перешла в другой статус
	ErrInvalidTransition = errors.New("appointments: invalid status transition")

	// ErrSlotNotAvailable возвращается если новое время пересекает другую активную запись
	ErrSlotNotAvailable = errors.New("appointments: slot is not available")

	// ErrServiceNotFound возвращается если услуга не существует или принадлежит другому мастеру
	ErrServiceNotFound = errors.New("appointments: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках хранилища
	ErrInternal = errors.New("appointments: internal error")
)
