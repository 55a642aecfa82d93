package events

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const defaultHandlerTimeout = 5 * time.Second

type registration struct {
	name    string
	handler Handler
}

// Dispatcher рассылает события зарегистрированным обработчикам.
// Обработчики вызываются после записи в хранилище, их ошибки логируются
// и не возвращаются вызывающему.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []registration
	timeout  time.Duration
	logger   Logger
}

// NewDispatcher создает диспетчер без обработчиков
func NewDispatcher(logger Logger) *Dispatcher {
	return &Dispatcher{
		timeout: defaultHandlerTimeout,
		logger:  logger,
	}
}

// Register добавляет обработчик, name используется в логах
func (d *Dispatcher) Register(name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, registration{name: name, handler: handler})
}

// Publish доставляет событие каждому обработчику в порядке регистрации
func (d *Dispatcher) Publish(ctx context.Context, event Event) {
	d.mu.RLock()
	handlers := append([]registration(nil), d.handlers...)
	d.mu.RUnlock()

	// запрос может завершиться раньше обработчиков
	base := context.WithoutCancel(ctx)

	for _, reg := range handlers {
		if err := d.deliver(base, reg, event); err != nil {
			d.logger.Error("Publish: handler=%s failed for event=%s type=%s appointment=%s: %v",
				reg.name, event.ID, event.Type, event.Appointment.ID, err)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, reg registration, event Event) (err error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	return reg.handler.Handle(ctx, event)
}
