package businesshours

import "errors"

var (
	// ErrAccessDenied возвращается если пользователь не владелец часов работы
	ErrAccessDenied = errors.New("businesshours: access denied")

	// ErrInvalidInput возвращается при некорректном дне или времени
	ErrInvalidInput = errors.New("businesshours: invalid input data")

	// ErrInternal возвращается при внутренних ошибках хранилища
	ErrInternal = errors.New("businesshours: internal error")
)
