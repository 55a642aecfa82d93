// Package slotlock сериализует проверку пересечений и вставку записей по мастеру и дню.
package slotlock

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/redislock"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/txmanager"
)

// ErrContended возвращается если блокировка или транзакция проиграла параллельной записи
var ErrContended = errors.New("slotlock: contended")

// Locker выполняет fn эксклюзивно для key
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Unserialized выполняет fn напрямую. Две параллельные записи на один слот могут обе пройти проверку.
type Unserialized struct{}

func (Unserialized) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Logger сообщает о блокировках, истекших во время выполнения
type Logger interface {
	Warn(format string, v ...interface{})
}

// Normalized приводит ошибки конкуренции обернутого locker к ErrContended
type Normalized struct {
	inner  Locker
	logger Logger
}

// Normalize оборачивает inner
func Normalize(inner Locker, logger Logger) *Normalized {
	return &Normalized{inner: inner, logger: logger}
}

func (n *Normalized) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	err := n.inner.WithLock(ctx, key, fn)
	switch {
	case errors.Is(err, txmanager.ErrSerialization) || errors.Is(err, redislock.ErrNotAcquired):
		return fmt.Errorf("%w: key=%s: %w", ErrContended, key, err)
	case errors.Is(err, redislock.ErrLockLost):
		// fn выполнилась и запись сохранена, блокировка пропала только к моменту освобождения
		n.logger.Warn("SlotLock: lock key=%s expired before release: %v", key, err)
		return nil
	}
	return err
}
