package kafkapublisher

import "errors"

var (
	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("kafkapublisher: failed to marshal event")

	// ErrWrite возвращается при ошибке записи в брокер
	ErrWrite = errors.New("kafkapublisher: failed to write message")
)
