package booking_session

import "errors"

var (
	// ErrSessionNotFound возвращается если сессия не найдена, истекла или чужая
	ErrSessionNotFound = errors.New("booking_session: session not found")

	// ErrAccessDenied возвращается для анонимных пользователей
	ErrAccessDenied = errors.New("booking_session: access denied")

	// ErrCustomerNotFound возвращается если клиент сессии не существует
	ErrCustomerNotFound = errors.New("booking_session: customer not found")

	// ErrIncomplete возвращается если выбор еще не завершен
	ErrIncomplete = errors.New("booking_session: session is incomplete")

	// ErrSlotNotAvailable возвращается если выбранное время недоступно
	ErrSlotNotAvailable = errors.New("booking_session: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках хранилища
	ErrInternal = errors.New("booking_session: internal error")
)
