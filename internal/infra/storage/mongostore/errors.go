package mongostore

import "errors"

var (
	// ErrQuery возвращается при ошибке операции MongoDB
	ErrQuery = errors.New("mongostore: query failed")

	// ErrDecode возвращается при ошибке декодирования документа
	ErrDecode = errors.New("mongostore: failed to decode document")
)
