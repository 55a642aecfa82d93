package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotAcquired возвращается если блокировка была занята все время ожидания
	ErrNotAcquired = errors.New("redislock: lock not acquired")

	// ErrLockLost возвращается если блокировка истекла до завершения fn
	ErrLockLost = errors.New("redislock: lock lost")
)

// release удаляет ключ, только если в нем все еще наш токен
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Options параметры времени блокировки
type Options struct {
	Prefix    string
	TTL       time.Duration
	WaitTime  time.Duration
	RetryStep time.Duration
}

// DefaultOptions значения для нулевых полей
func DefaultOptions() Options {
	return Options{
		Prefix:    "lock:",
		TTL:       10 * time.Second,
		WaitTime:  3 * time.Second,
		RetryStep: 50 * time.Millisecond,
	}
}

// Locker мьютекс на одном инстансе Redis (SET NX PX + освобождение с проверкой токена)
type Locker struct {
	client redis.UniversalClient
	opts   Options
}

// New создает locker
func New(client redis.UniversalClient, opts Options) *Locker {
	def := DefaultOptions()
	if opts.Prefix == "" {
		opts.Prefix = def.Prefix
	}
	if opts.TTL <= 0 {
		opts.TTL = def.TTL
	}
	if opts.WaitTime <= 0 {
		opts.WaitTime = def.WaitTime
	}
	if opts.RetryStep <= 0 {
		opts.RetryStep = def.RetryStep
	}
	return &Locker{client: client, opts: opts}
}

// WithLock удерживает блокировку key пока выполняется fn
func (l *Locker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	fullKey := l.opts.Prefix + key
	token := uuid.NewString()

	if err := l.acquire(ctx, fullKey, token); err != nil {
		return err
	}

	fnErr := fn(ctx)

	// освобождаем с новым контекстом, контекст вызывающего может быть уже отменен
	releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	released, err := releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Int()
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("redislock: release %s: %w", fullKey, err)
	}
	if released == 0 {
		return fmt.Errorf("%w: %s", ErrLockLost, fullKey)
	}
	return nil
}

func (l *Locker) acquire(ctx context.Context, key, token string) error {
	deadline := time.Now().Add(l.opts.WaitTime)
	ticker := time.NewTicker(l.opts.RetryStep)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.opts.TTL).Result()
		if err != nil {
			return fmt.Errorf("redislock: acquire %s: %w", key, err)
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrNotAcquired, key)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
