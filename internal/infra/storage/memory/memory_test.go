package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

var day = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func TestLocker_SerializesSameKey(t *testing.T) {
	l := NewLocker()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.WithLock(context.Background(), "prov-1", func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				if n > atomic.LoadInt32(&maxSeen) {
					atomic.StoreInt32(&maxSeen, n)
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxSeen))
	assert.Empty(t, l.locks)
}

func TestLocker_WaitHonorsContext(t *testing.T) {
	l := NewLocker()
	held := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = l.WithLock(context.Background(), "prov-1", func(ctx context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	called := false
	err := l.WithLock(ctx, "prov-1", func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)

	// другие ключи независимы
	require.NoError(t, l.WithLock(context.Background(), "prov-2", func(ctx context.Context) error { return nil }))

	close(release)
}

func TestAppointmentRepository_DayQueries(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()

	seed := func(customerID string, hour int, status domain.AppointmentStatus, offsetDays int) *domain.Appointment {
		start := day.AddDate(0, 0, offsetDays).Add(time.Duration(hour) * time.Hour)
		appt, err := repo.Create(ctx, &domain.Appointment{
			ProviderID: "prov-1",
			CustomerID: customerID,
			ServiceIDs: []string{"cut"},
			StartTime:  start,
			EndTime:    start.Add(time.Hour),
			Status:     status,
			CreatedAt:  day,
		})
		require.NoError(t, err)
		return appt
	}

	late := seed("cust-1", 14, domain.StatusConfirmed, 0)
	early := seed("cust-2", 9, domain.StatusPending, 0)
	seed("cust-1", 11, domain.StatusCanceled, 0)
	seed("cust-1", 10, domain.StatusPending, 1)

	active, err := repo.GetByProviderForDay(ctx, "prov-1", day, domain.ActiveStatuses)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, early.ID, active[0].ID)
	assert.Equal(t, late.ID, active[1].ID)

	all, err := repo.GetByProviderForDay(ctx, "prov-1", day.Add(13*time.Hour), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.GetByCustomerForDay(ctx, "cust-1", day)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	history, err := repo.GetByCustomer(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, history[0].StartTime.After(history[1].StartTime))
}

func TestAppointmentRepository_ConditionalWrites(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()

	appt, err := repo.Create(ctx, &domain.Appointment{
		ProviderID: "prov-1",
		CustomerID: "cust-1",
		ServiceIDs: []string{"cut"},
		StartTime:  day.Add(10 * time.Hour),
		EndTime:    day.Add(11 * time.Hour),
		Status:     domain.StatusPending,
		CreatedAt:  day,
	})
	require.NoError(t, err)
	require.NotEmpty(t, appt.ID)
	assert.Equal(t, day, appt.UpdatedAt)

	// сохраненные копии не связаны с объектом вызывающего
	appt.ServiceIDs[0] = "changed"
	stored, err := repo.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"cut"}, stored.ServiceIDs)

	err = repo.UpdateStatus(ctx, appt.ID, domain.StatusConfirmed, domain.StatusCompleted, day)
	assert.ErrorIs(t, err, storage.ErrStatusMismatch)

	require.NoError(t, repo.UpdateStatus(ctx, appt.ID, domain.StatusPending, domain.StatusCanceled, day.Add(time.Hour)))

	stored.Notes = "too late"
	assert.ErrorIs(t, repo.Update(ctx, stored), storage.ErrStatusMismatch)

	require.NoError(t, repo.Delete(ctx, appt.ID))
	assert.ErrorIs(t, repo.Delete(ctx, appt.ID), storage.ErrAppointmentNotFound)

	_, err = repo.GetByID(ctx, appt.ID)
	assert.ErrorIs(t, err, storage.ErrAppointmentNotFound)
}
