package booking_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/cache/bookingsession"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/memory"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/create_appointment"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/get_available_slots"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/logger"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/types"
)

// 2024-06-03 понедельник
var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

type nopMetrics struct{}

func (nopMetrics) IncAppointmentsCreated(string)  {}
func (nopMetrics) IncAppointmentConflicts(string) {}

type fixture struct {
	store        *bookingsession.MemoryStore
	appointments *memory.AppointmentRepository
	uc           *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	appointments := memory.NewAppointmentRepository()
	hours := memory.NewBusinessHoursRepository()
	catalog := memory.NewCatalogRepository()
	profiles := memory.NewProfileRepository()

	require.NoError(t, hours.Upsert(ctx, &domain.BusinessHours{
		ProviderID:  "prov-1",
		DayOfWeek:   time.Monday,
		OpeningTime: types.TimeString("09:00"),
		ClosingTime: types.TimeString("12:00"),
	}))
	catalog.Add(domain.Service{ID: "cut", ProviderID: "prov-1", Name: "Haircut", Price: 40, DurationMinutes: 60})
	catalog.Add(domain.Service{ID: "wash", ProviderID: "prov-1", Name: "Wash", Price: 10, DurationMinutes: 15})
	profiles.AddProvider("prov-1", "Studio Lena")
	profiles.AddCustomer("cust-1", "Anna")
	profiles.AddCustomer("cust-2", "Ben")

	log := logger.NewNop()
	slots := get_available_slots.NewUseCase(appointments, hours, catalog, 15, log)
	creator := create_appointment.NewUseCase(appointments, catalog, profiles, memory.NewLocker(),
		events.NewDispatcher(log), nopMetrics{}, 15, log)

	f := &fixture{
		store:        bookingsession.NewMemoryStore(),
		appointments: appointments,
	}
	f.uc = NewUseCase(f.store, slots, creator, profiles, catalog, time.Hour, log)
	return f
}

func at(hour, minute int) time.Time {
	return monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestWorkflow_CustomerBooksThroughSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anna := domain.CustomerIdentity("cust-1")

	session, err := f.uc.Start(ctx, anna, &StartRequest{})
	require.NoError(t, err)
	assert.Equal(t, "cust-1", session.CustomerID)
	assert.Equal(t, "Anna", session.CustomerName)

	_, err = f.uc.SelectServices(ctx, anna, session.ID, &SelectServicesRequest{
		ProviderID: "prov-1",
		ServiceIDs: []string{"cut", "wash"},
	})
	require.NoError(t, err)

	_, err = f.uc.SelectSlot(ctx, anna, session.ID, &SelectSlotRequest{Start: at(10, 0), Notes: "short please"})
	require.NoError(t, err)

	view, err := f.uc.Slots(ctx, anna, session.ID, monday)
	require.NoError(t, err)
	selected := 0
	for _, s := range view.Slots {
		if s.Selected {
			selected++
			assert.True(t, s.Start.Equal(at(10, 0)))
		}
	}
	assert.Equal(t, 1, selected)

	appt, err := f.uc.Confirm(ctx, anna, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, appt.Status)
	assert.True(t, appt.EndTime.Equal(at(11, 15)))
	assert.Equal(t, "short please", appt.Notes)

	// после успешной записи сессии нет
	_, err = f.uc.SelectSlot(ctx, anna, session.ID, &SelectSlotRequest{Start: at(9, 0)})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConfirm_FailedBookingKeepsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anna := domain.CustomerIdentity("cust-1")

	session, err := f.uc.Start(ctx, anna, &StartRequest{})
	require.NoError(t, err)
	_, err = f.uc.SelectServices(ctx, anna, session.ID, &SelectServicesRequest{ProviderID: "prov-1", ServiceIDs: []string{"cut"}})
	require.NoError(t, err)
	_, err = f.uc.SelectSlot(ctx, anna, session.ID, &SelectSlotRequest{Start: at(10, 0)})
	require.NoError(t, err)

	// кто-то занимает слот между выбором и подтверждением
	_, err = f.appointments.Create(ctx, &domain.Appointment{
		ProviderID: "prov-1",
		CustomerID: "cust-2",
		StartTime:  at(10, 30),
		EndTime:    at(11, 30),
		Status:     domain.StatusConfirmed,
	})
	require.NoError(t, err)

	_, err = f.uc.Confirm(ctx, anna, session.ID)
	assert.ErrorIs(t, err, create_appointment.ErrSlotNotAvailable)

	kept, err := f.store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.SelectedSlot)
	assert.True(t, kept.SelectedSlot.Equal(at(10, 0)))
}

func TestSelectSlot_RejectsUnavailableStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anna := domain.CustomerIdentity("cust-1")

	_, err := f.appointments.Create(ctx, &domain.Appointment{
		ProviderID: "prov-1",
		CustomerID: "cust-2",
		StartTime:  at(9, 0),
		EndTime:    at(10, 0),
		Status:     domain.StatusPending,
	})
	require.NoError(t, err)

	session, err := f.uc.Start(ctx, anna, &StartRequest{})
	require.NoError(t, err)
	_, err = f.uc.SelectServices(ctx, anna, session.ID, &SelectServicesRequest{ProviderID: "prov-1", ServiceIDs: []string{"cut"}})
	require.NoError(t, err)

	tests := []struct {
		name  string
		start time.Time
	}{
		{name: "occupied", start: at(9, 30)},
		{name: "off grid", start: at(10, 5)},
		{name: "runs past closing", start: at(11, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.SelectSlot(ctx, anna, session.ID, &SelectSlotRequest{Start: tt.start})
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		})
	}
}

func TestSelectServices_ClearsSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anna := domain.CustomerIdentity("cust-1")

	session, err := f.uc.Start(ctx, anna, &StartRequest{})
	require.NoError(t, err)
	_, err = f.uc.SelectServices(ctx, anna, session.ID, &SelectServicesRequest{ProviderID: "prov-1", ServiceIDs: []string{"cut"}})
	require.NoError(t, err)
	_, err = f.uc.SelectSlot(ctx, anna, session.ID, &SelectSlotRequest{Start: at(9, 0)})
	require.NoError(t, err)

	updated, err := f.uc.SelectServices(ctx, anna, session.ID, &SelectServicesRequest{ProviderID: "prov-1", ServiceIDs: []string{"wash"}})
	require.NoError(t, err)
	assert.Nil(t, updated.SelectedSlot)

	_, err = f.uc.Confirm(ctx, anna, session.ID)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.uc.Start(ctx, domain.ProviderIdentity("prov-1"), &StartRequest{CustomerID: "cust-2"})
	require.NoError(t, err)
	assert.Equal(t, "Ben", session.CustomerName)
	assert.Equal(t, "prov-1", session.CallerID)

	_, err = f.uc.Start(ctx, domain.ProviderIdentity("prov-1"), &StartRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Start(ctx, domain.ProviderIdentity("prov-1"), &StartRequest{CustomerID: "ghost"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = f.uc.Start(ctx, domain.Anonymous(), &StartRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSession_ForeignCallerSeesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.uc.Start(ctx, domain.CustomerIdentity("cust-1"), &StartRequest{})
	require.NoError(t, err)

	_, err = f.uc.Slots(ctx, domain.CustomerIdentity("cust-2"), session.ID, monday)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = f.uc.Cancel(ctx, domain.Anonymous(), session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, f.uc.Cancel(ctx, domain.CustomerIdentity("cust-1"), session.ID))
	_, err = f.store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, bookingsession.ErrSessionNotFound)
}
