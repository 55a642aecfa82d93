package create_appointment

import "errors"

var (
	// ErrAccessDenied возвращается если пользователь не мастер и не клиент записи
	ErrAccessDenied = errors.New("create_appointment: access denied")

	// ErrServiceNotFound возвращается если услуга не существует или принадлежит другому мастеру
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrCustomerNotFound возвращается если клиент не найден
	ErrCustomerNotFound = errors.New("create_appointment: customer not found")

	// ErrDurationMismatch возвращается если end - start не равно сумме длительностей услуг
	ErrDurationMismatch = errors.New("create_appointment: duration does not match services")

	// ErrSlotNotAvailable возвращается если активная запись мастера пересекает запрошенное время
	ErrSlotNotAvailable = errors.New("create_appointment: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках хранилища
	ErrInternal = errors.New("create_appointment: internal error")
)
