package get_available_slots

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/memory"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/logger"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/types"
)

// 2024-06-03 понедельник
var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

type fixture struct {
	appointments *memory.AppointmentRepository
	hours        *memory.BusinessHoursRepository
	catalog      *memory.CatalogRepository
	uc           *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		appointments: memory.NewAppointmentRepository(),
		hours:        memory.NewBusinessHoursRepository(),
		catalog:      memory.NewCatalogRepository(),
	}
	f.uc = NewUseCase(f.appointments, f.hours, f.catalog, 15, logger.NewNop())

	require.NoError(t, f.hours.Upsert(context.Background(), &domain.BusinessHours{
		ProviderID:  "prov-1",
		DayOfWeek:   time.Monday,
		OpeningTime: types.TimeString("09:00"),
		ClosingTime: types.TimeString("18:00"),
	}))
	require.NoError(t, f.hours.Upsert(context.Background(), &domain.BusinessHours{
		ProviderID:  "prov-1",
		DayOfWeek:   time.Sunday,
		OpeningTime: types.TimeString("10:00"),
		ClosingTime: types.TimeString("10:00"),
	}))

	f.catalog.Add(domain.Service{ID: "cut", ProviderID: "prov-1", Name: "Haircut", Price: 40, DurationMinutes: 60})
	f.catalog.Add(domain.Service{ID: "wash", ProviderID: "prov-1", Name: "Wash", Price: 10, DurationMinutes: 15})
	f.catalog.Add(domain.Service{ID: "zero", ProviderID: "prov-1", Name: "Consultation", DurationMinutes: 0})
	f.catalog.Add(domain.Service{ID: "nails", ProviderID: "prov-2", Name: "Nails", Price: 30, DurationMinutes: 45})
	return f
}

func (f *fixture) book(t *testing.T, start string, minutes int, status domain.AppointmentStatus) {
	t.Helper()

	begin, err := types.TimeString(start).OnDate(monday)
	require.NoError(t, err)
	_, err = f.appointments.Create(context.Background(), &domain.Appointment{
		ProviderID: "prov-1",
		CustomerID: "cust-1",
		StartTime:  begin,
		EndTime:    begin.Add(time.Duration(minutes) * time.Minute),
		Status:     status,
	})
	require.NoError(t, err)
}

func at(clock string) time.Time {
	t, _ := types.TimeString(clock).OnDate(monday)
	return t
}

func TestExecute_OpenDayWithoutAppointments(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ProviderID: "prov-1",
		ServiceIDs: []string{"cut"},
		Date:       monday.Add(13 * time.Hour),
	})
	require.NoError(t, err)

	// с 09:00 до 17:00 каждые 15 минут
	require.Len(t, resp.Slots, 33)
	assert.Equal(t, at("09:00"), resp.Slots[0].Start)
	assert.Equal(t, at("09:15"), resp.Slots[1].Start)
	assert.Equal(t, at("17:00"), resp.Slots[32].Start)
	assert.Equal(t, 60, resp.DurationMinutes)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, s.Start)
	}
}

func TestExecute_ConfirmedAppointmentBlocksOverlappingSlots(t *testing.T) {
	f := newFixture(t)
	f.book(t, "10:00", 60, domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ProviderID: "prov-1",
		ServiceIDs: []string{"cut"},
		Date:       monday,
	})
	require.NoError(t, err)

	availability := make(map[string]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		availability[s.Start.Format(domain.TimeFormat)] = s.Available
	}

	assert.True(t, availability["09:00"], "touching the appointment start is not an overlap")
	for _, clock := range []string{"09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45"} {
		assert.False(t, availability[clock], clock)
	}
	assert.True(t, availability["11:00"])
	assert.True(t, availability["17:00"])
}

func TestExecute_InactiveAppointmentsDoNotBlock(t *testing.T) {
	f := newFixture(t)
	f.book(t, "10:00", 60, domain.StatusCanceled)
	f.book(t, "12:00", 60, domain.StatusCompleted)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ProviderID: "prov-1",
		ServiceIDs: []string{"cut"},
		Date:       monday,
	})
	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, s.Start)
	}
}

func TestExecute_MultipleServicesUseSummedDuration(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ProviderID: "prov-1",
		ServiceIDs: []string{"cut", "wash"},
		Date:       monday,
	})
	require.NoError(t, err)

	assert.Equal(t, 75, resp.DurationMinutes)
	assert.Equal(t, at("16:45"), resp.Slots[len(resp.Slots)-1].Start)
}

func TestExecute_SelectedSlot(t *testing.T) {
	f := newFixture(t)
	selected := at("11:30")

	resp, err := f.uc.Execute(context.Background(), &Request{
		ProviderID:    "prov-1",
		ServiceIDs:    []string{"wash"},
		Date:          monday,
		SelectedStart: &selected,
	})
	require.NoError(t, err)

	count := 0
	for _, s := range resp.Slots {
		if s.Selected {
			count++
			assert.Equal(t, selected, s.Start)
		}
	}
	assert.Equal(t, 1, count)
}

func TestExecute_EmptyResults(t *testing.T) {
	f := newFixture(t)
	sunday := monday.AddDate(0, 0, 6)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "no service",
			req:  &Request{ProviderID: "prov-1", Date: monday},
		},
		{
			name: "zero duration",
			req:  &Request{ProviderID: "prov-1", ServiceIDs: []string{"zero"}, Date: monday},
		},
		{
			name: "zero duration next to a real service",
			req:  &Request{ProviderID: "prov-1", ServiceIDs: []string{"cut", "zero"}, Date: monday},
		},
		{
			name: "closed day",
			req:  &Request{ProviderID: "prov-1", ServiceIDs: []string{"cut"}, Date: sunday},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.uc.Execute(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Empty(t, resp.Slots)
			assert.Zero(t, resp.DurationMinutes)
		})
	}
}

func TestExecute_DurationLongerThanOpeningHours(t *testing.T) {
	f := newFixture(t)
	f.catalog.Add(domain.Service{ID: "marathon", ProviderID: "prov-1", Name: "Full day", DurationMinutes: 10 * 60})

	resp, err := f.uc.Execute(context.Background(), &Request{
		ProviderID: "prov-1",
		ServiceIDs: []string{"marathon"},
		Date:       monday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t)
	tuesday := monday.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "unknown service",
			req:     &Request{ProviderID: "prov-1", ServiceIDs: []string{"ghost"}, Date: monday},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "service of another provider",
			req:     &Request{ProviderID: "prov-1", ServiceIDs: []string{"nails"}, Date: monday},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "no business hours",
			req:     &Request{ProviderID: "prov-1", ServiceIDs: []string{"cut"}, Date: tuesday},
			wantErr: ErrBusinessHoursNotFound,
		},
		{
			name:    "missing provider",
			req:     &Request{ServiceIDs: []string{"cut"}, Date: monday},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			req:     &Request{ProviderID: "prov-1", ServiceIDs: []string{"cut"}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// На случайных днях с записями доступный слот никогда не пересекает запись
// и не заканчивается после закрытия.
func TestExecute_GeneratedSlotsHoldUnderRandomBookings(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	closing := at("18:00")

	for round := 0; round < 50; round++ {
		f := newFixture(t)

		var booked []*domain.Appointment
		n := 1 + rng.Intn(5)
		for i := 0; i < n; i++ {
			startMinute := 9*60 + rng.Intn(8*60)
			start := monday.Add(time.Duration(startMinute) * time.Minute)
			appt := &domain.Appointment{
				ProviderID: "prov-1",
				CustomerID: "cust-1",
				StartTime:  start,
				EndTime:    start.Add(time.Duration(5+rng.Intn(90)) * time.Minute),
				Status:     domain.ActiveStatuses[rng.Intn(len(domain.ActiveStatuses))],
			}
			_, err := f.appointments.Create(context.Background(), appt)
			require.NoError(t, err)
			booked = append(booked, appt)
		}

		serviceIDs := [][]string{{"cut"}, {"wash"}, {"cut", "wash"}}[rng.Intn(3)]
		resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: "prov-1", ServiceIDs: serviceIDs, Date: monday})
		require.NoError(t, err)

		duration := time.Duration(resp.DurationMinutes) * time.Minute
		for i, slot := range resp.Slots {
			end := slot.Start.Add(duration)
			assert.False(t, end.After(closing), "slot %s ends after closing", slot.Start)
			if i > 0 {
				assert.True(t, slot.Start.After(resp.Slots[i-1].Start))
			}
			if !slot.Available {
				continue
			}
			for _, appt := range booked {
				assert.False(t, domain.Overlaps(domain.NewInterval(slot.Start, duration), appt.Interval()),
					"round %d: available slot %s overlaps %s-%s", round, slot.Start, appt.StartTime, appt.EndTime)
			}
		}
	}
}
