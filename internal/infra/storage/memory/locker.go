package memory

import (
	"context"
	"sync"
)

// Locker сериализует функции по ключу в рамках процесса
type Locker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewLocker создает блокировку по ключам в памяти процесса
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*keyLock)}
}

// WithLock выполняет fn, удерживая блокировку key
func (l *Locker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lock := l.acquireRef(key)
	defer l.releaseRef(key)

	select {
	case lock.ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-lock.ch }()

	return fn(ctx)
}

func (l *Locker) acquireRef(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[key]
	if !ok {
		lock = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = lock
	}
	lock.refs++
	return lock
}

func (l *Locker) releaseRef(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock := l.locks[key]
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
}
