package relationships

import "errors"

var (
	// ErrRelationshipNotFound возвращается если у мастера и клиента нет истории
	ErrRelationshipNotFound = errors.New("relationships: relationship not found")

	// ErrAccessDenied возвращается если пользователь не является стороной связи
	ErrAccessDenied = errors.New("relationships: access denied")

	// ErrInternal возвращается при внутренних ошибках хранилища
	ErrInternal = errors.New("relationships: internal error")
)
