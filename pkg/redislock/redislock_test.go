package redislock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T, opts Options) (*Locker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, opts), mr
}

func TestWithLock_ReleasesAfterRun(t *testing.T) {
	locker, mr := newLocker(t, Options{})
	ctx := context.Background()

	err := locker.WithLock(ctx, "prov-1:2024-06-03", func(ctx context.Context) error {
		assert.True(t, mr.Exists("lock:prov-1:2024-06-03"))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("lock:prov-1:2024-06-03"))

	fnErr := errors.New("conflict")
	err = locker.WithLock(ctx, "prov-1:2024-06-03", func(ctx context.Context) error { return fnErr })
	assert.ErrorIs(t, err, fnErr)
	assert.False(t, mr.Exists("lock:prov-1:2024-06-03"))
}

func TestWithLock_BusyKey(t *testing.T) {
	locker, mr := newLocker(t, Options{WaitTime: 100 * time.Millisecond, RetryStep: 10 * time.Millisecond})
	require.NoError(t, mr.Set("lock:busy", "someone-else"))

	called := false
	err := locker.WithLock(context.Background(), "busy", func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrNotAcquired)
	assert.False(t, called)

	// чужой токен никогда не освобождается
	value, getErr := mr.Get("lock:busy")
	require.NoError(t, getErr)
	assert.Equal(t, "someone-else", value)
}

func TestWithLock_LostLock(t *testing.T) {
	locker, mr := newLocker(t, Options{TTL: time.Second})

	err := locker.WithLock(context.Background(), "slow", func(ctx context.Context) error {
		mr.FastForward(2 * time.Second)
		return nil
	})
	assert.ErrorIs(t, err, ErrLockLost)
}

func TestWithLock_SerializesHolders(t *testing.T) {
	locker, _ := newLocker(t, Options{RetryStep: 5 * time.Millisecond})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		maxSeen int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithLock(context.Background(), "shared", func(ctx context.Context) error {
				mu.Lock()
				holders++
				if holders > maxSeen {
					maxSeen = holders
				}
				mu.Unlock()

				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				holders--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}
