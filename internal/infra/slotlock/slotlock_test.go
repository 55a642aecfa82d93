package slotlock

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/redislock"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/txmanager"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

type failingLocker struct {
	err error
}

func (l failingLocker) WithLock(context.Context, string, func(ctx context.Context) error) error {
	return l.err
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantContended bool
	}{
		{name: "serialization failure", err: fmt.Errorf("%w: after 3 attempts", txmanager.ErrSerialization), wantContended: true},
		{name: "redis lock busy", err: redislock.ErrNotAcquired, wantContended: true},
		{name: "redis lock expired mid run", err: fmt.Errorf("%w: slotlock:p:2024-06-03", redislock.ErrLockLost)},
		{name: "other error", err: errors.New("boom")},
		{name: "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			err := Normalize(failingLocker{err: tt.err}, log).WithLock(context.Background(), "p:2024-06-03", nil)
			assert.Equal(t, tt.wantContended, errors.Is(err, ErrContended))

			if errors.Is(tt.err, redislock.ErrLockLost) {
				assert.NoError(t, err)
				assert.Len(t, log.warnings, 1)
				return
			}
			assert.Empty(t, log.warnings)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUnserialized(t *testing.T) {
	called := false
	err := Unserialized{}.WithLock(context.Background(), "k", func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}
