package bookingsession

import "errors"

var (
	// ErrSessionNotFound возвращается если сессии нет или она истекла
	ErrSessionNotFound = errors.New("bookingsession: session not found")

	// ErrMarshal возвращается при ошибке кодирования или декодирования сессии
	ErrMarshal = errors.New("bookingsession: marshal error")

	// ErrStore возвращается при ошибке хранилища
	ErrStore = errors.New("bookingsession: store error")
)
