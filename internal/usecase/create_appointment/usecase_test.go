package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/slotlock"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/memory"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/logger"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/redislock"
)

var day = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type countingMetrics struct {
	mu        sync.Mutex
	created   map[string]int
	conflicts map[string]int
}

func (m *countingMetrics) IncAppointmentsCreated(role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created[role]++
}

func (m *countingMetrics) IncAppointmentConflicts(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts[operation]++
}

type fixture struct {
	appointments *memory.AppointmentRepository
	dispatcher   *events.Dispatcher
	metrics      *countingMetrics
	uc           *UseCase
}

func newFixture(t *testing.T, locker SlotLocker) *fixture {
	t.Helper()

	catalog := memory.NewCatalogRepository()
	catalog.Add(domain.Service{ID: "cut", ProviderID: "prov-1", Name: "Haircut", Price: 40, DurationMinutes: 60})
	catalog.Add(domain.Service{ID: "wash", ProviderID: "prov-1", Name: "Wash", Price: 10, DurationMinutes: 15})
	catalog.Add(domain.Service{ID: "nails", ProviderID: "prov-2", Name: "Nails", Price: 30, DurationMinutes: 60})
	catalog.Add(domain.Service{ID: "consult", ProviderID: "prov-1", Name: "Consultation", DurationMinutes: 0})

	profiles := memory.NewProfileRepository()
	profiles.AddProvider("prov-1", "Studio Lena")
	profiles.AddCustomer("cust-1", "Anna")
	profiles.AddCustomer("cust-2", "Ben")

	f := &fixture{
		appointments: memory.NewAppointmentRepository(),
		dispatcher:   events.NewDispatcher(logger.NewNop()),
		metrics:      &countingMetrics{created: map[string]int{}, conflicts: map[string]int{}},
	}
	f.uc = NewUseCase(f.appointments, catalog, profiles, locker, f.dispatcher, f.metrics, 15, logger.NewNop())
	f.uc.timeProvider = fixedTime{t: day.Add(-24 * time.Hour)}
	return f
}

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func request(caller domain.Identity, customerID string, start time.Time) *Request {
	return &Request{
		Caller:     caller,
		ProviderID: "prov-1",
		CustomerID: customerID,
		ServiceIDs: []string{"cut"},
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
	}
}

func TestExecute_OverlappingSecondBookingConflicts(t *testing.T) {
	f := newFixture(t, memory.NewLocker())
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, request(domain.CustomerIdentity("cust-1"), "cust-1", at(14, 0)))
	require.NoError(t, err)
	require.NotEmpty(t, first.Appointment.ID)

	_, err = f.uc.Execute(ctx, request(domain.CustomerIdentity("cust-2"), "cust-2", at(14, 30)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// касание конца первой записи допустимо
	_, err = f.uc.Execute(ctx, request(domain.CustomerIdentity("cust-2"), "cust-2", at(15, 0)))
	assert.NoError(t, err)

	assert.Equal(t, 1, f.metrics.conflicts["create"])
	assert.Equal(t, 2, f.metrics.created["customer"])
}

func TestExecute_StoresDenormalizedPendingAppointment(t *testing.T) {
	f := newFixture(t, memory.NewLocker())
	ctx := context.Background()

	req := request(domain.ProviderIdentity("prov-1"), "cust-1", at(10, 0))
	req.ServiceIDs = []string{"cut", "wash"}
	req.EndTime = at(11, 15)
	req.Notes = "first visit"

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)

	stored, err := f.appointments.GetByID(ctx, resp.Appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, "Haircut, Wash", stored.ServiceName)
	assert.Equal(t, "Anna", stored.CustomerName)
	assert.InDelta(t, 50.0, stored.Price, 0.001)
	assert.Equal(t, 15, stored.CleaningTimeMinutes)
	assert.Equal(t, day.Add(-24*time.Hour), stored.CreatedAt)
	assert.Equal(t, "first visit", stored.Notes)
}

func TestExecute_CanceledAppointmentDoesNotBlock(t *testing.T) {
	f := newFixture(t, memory.NewLocker())
	ctx := context.Background()

	_, err := f.appointments.Create(ctx, &domain.Appointment{
		ProviderID: "prov-1",
		CustomerID: "cust-2",
		StartTime:  at(14, 0),
		EndTime:    at(15, 0),
		Status:     domain.StatusCanceled,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(domain.CustomerIdentity("cust-1"), "cust-1", at(14, 0)))
	assert.NoError(t, err)
}

func TestExecute_Authorization(t *testing.T) {
	tests := []struct {
		name   string
		caller domain.Identity
	}{
		{name: "anonymous", caller: domain.Anonymous()},
		{name: "other customer", caller: domain.CustomerIdentity("cust-2")},
		{name: "other provider", caller: domain.ProviderIdentity("prov-2")},
		{name: "customer id used as provider", caller: domain.ProviderIdentity("cust-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, memory.NewLocker())

			_, err := f.uc.Execute(context.Background(), request(tt.caller, "cust-1", at(9, 0)))
			assert.ErrorIs(t, err, ErrAccessDenied)

			stored, err := f.appointments.GetByProvider(context.Background(), "prov-1")
			require.NoError(t, err)
			assert.Empty(t, stored)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	customer := domain.CustomerIdentity("cust-1")

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "end before start",
			mutate:  func(r *Request) { r.EndTime = r.StartTime.Add(-time.Hour) },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duration shorter than service",
			mutate:  func(r *Request) { r.EndTime = r.StartTime.Add(45 * time.Minute) },
			wantErr: ErrDurationMismatch,
		},
		{
			name:    "no services",
			mutate:  func(r *Request) { r.ServiceIDs = nil },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown service",
			mutate:  func(r *Request) { r.ServiceIDs = []string{"ghost"} },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "service of another provider",
			mutate:  func(r *Request) { r.ServiceIDs = []string{"nails"} },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "service without duration next to a real one",
			mutate:  func(r *Request) { r.ServiceIDs = []string{"cut", "consult"} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing provider",
			mutate:  func(r *Request) { r.ProviderID = "" },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, memory.NewLocker())
			req := request(customer, "cust-1", at(9, 0))
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_UnknownCustomer(t *testing.T) {
	f := newFixture(t, memory.NewLocker())

	_, err := f.uc.Execute(context.Background(), request(domain.ProviderIdentity("prov-1"), "ghost", at(9, 0)))
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_SideEffectFailureKeepsAppointment(t *testing.T) {
	f := newFixture(t, memory.NewLocker())
	ctx := context.Background()

	var delivered []events.Type
	f.dispatcher.Register("relationships", events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		delivered = append(delivered, e.Type)
		return errors.New("relationship store unavailable")
	}))

	resp, err := f.uc.Execute(ctx, request(domain.CustomerIdentity("cust-1"), "cust-1", at(9, 0)))
	require.NoError(t, err)
	assert.Equal(t, []events.Type{events.AppointmentCreated}, delivered)

	_, err = f.appointments.GetByID(ctx, resp.Appointment.ID)
	assert.NoError(t, err)
}

type contendedLocker struct{}

func (contendedLocker) WithLock(context.Context, string, func(ctx context.Context) error) error {
	return fmt.Errorf("%w: key busy", slotlock.ErrContended)
}

func TestExecute_ContendedLockIsAConflict(t *testing.T) {
	f := newFixture(t, contendedLocker{})

	_, err := f.uc.Execute(context.Background(), request(domain.CustomerIdentity("cust-1"), "cust-1", at(9, 0)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

// slowInsertLocker дает блокировке в redis истечь, пока вставка еще выполняется
type slowInsertLocker struct {
	inner *redislock.Locker
	mr    *miniredis.Miniredis
}

func (l slowInsertLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return l.inner.WithLock(ctx, key, func(ctx context.Context) error {
		err := fn(ctx)
		l.mr.FastForward(2 * time.Second)
		return err
	})
}

func TestExecute_LockExpiredAfterInsertStillSucceeds(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := redislock.New(client, redislock.Options{Prefix: "slotlock:", TTL: time.Second})
	f := newFixture(t, slotlock.Normalize(slowInsertLocker{inner: inner, mr: mr}, logger.NewNop()))
	ctx := context.Background()

	var delivered []events.Type
	f.dispatcher.Register("recorder", events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		delivered = append(delivered, e.Type)
		return nil
	}))

	resp, err := f.uc.Execute(ctx, request(domain.CustomerIdentity("cust-1"), "cust-1", at(9, 0)))
	require.NoError(t, err)
	assert.Equal(t, []events.Type{events.AppointmentCreated}, delivered)

	stored, err := f.appointments.GetByProviderForDay(ctx, "prov-1", day, nil)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, resp.Appointment.ID, stored[0].ID)
	assert.Equal(t, 1, f.metrics.created["customer"])
}

func TestExecute_ConcurrentBookingsOfOneSlot(t *testing.T) {
	f := newFixture(t, memory.NewLocker())
	ctx := context.Background()

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customerID := "cust-1"
			if i%2 == 1 {
				customerID = "cust-2"
			}
			// начала в 14:00-14:45, каждая пара пересекается
			start := at(14, (i%4)*15)
			_, err := f.uc.Execute(ctx, request(domain.CustomerIdentity(customerID), customerID, start))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	stored, err := f.appointments.GetByProviderForDay(ctx, "prov-1", day, domain.ActiveStatuses)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
