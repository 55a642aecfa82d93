package userservice

import "errors"

var (
	// ErrInternal возвращается если запрос не удалось отправить
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при неожиданном статусе или теле ответа
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
