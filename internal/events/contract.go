package events

import "context"

// Handler обработчик событий записей
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc адаптер функции к Handler
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
