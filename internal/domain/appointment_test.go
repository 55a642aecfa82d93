package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 3, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{at(9, 0), at(10, 0)}, Interval{at(11, 0), at(12, 0)}, false},
		{"touching end to start", Interval{at(9, 0), at(10, 0)}, Interval{at(10, 0), at(11, 0)}, false},
		{"partial", Interval{at(14, 0), at(15, 0)}, Interval{at(14, 30), at(15, 30)}, true},
		{"contained", Interval{at(9, 0), at(12, 0)}, Interval{at(10, 0), at(10, 15)}, true},
		{"identical", Interval{at(9, 0), at(10, 0)}, Interval{at(9, 0), at(10, 0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, Overlaps(tt.a, tt.b), Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestOverlaps_SelfForNonDegenerateIntervals(t *testing.T) {
	for minutes := 1; minutes <= 240; minutes += 17 {
		iv := NewInterval(at(8, 0), time.Duration(minutes)*time.Minute)
		require.True(t, iv.IsValid())
		assert.True(t, Overlaps(iv, iv), "interval of %d minutes", minutes)
	}
}

func TestFindConflict(t *testing.T) {
	existing := []*Appointment{
		{ID: "a", StartTime: at(10, 0), EndTime: at(11, 0), Status: StatusConfirmed},
		{ID: "b", StartTime: at(12, 0), EndTime: at(13, 0), Status: StatusCanceled},
		{ID: "c", StartTime: at(14, 0), EndTime: at(15, 0), Status: StatusCompleted},
	}

	t.Run("active appointment blocks", func(t *testing.T) {
		conflict := FindConflict(Interval{at(10, 30), at(11, 30)}, existing, "")
		require.NotNil(t, conflict)
		assert.Equal(t, "a", conflict.ID)
	})

	t.Run("terminal appointments never block", func(t *testing.T) {
		assert.Nil(t, FindConflict(Interval{at(12, 0), at(13, 0)}, existing, ""))
		assert.Nil(t, FindConflict(Interval{at(14, 0), at(15, 0)}, existing, ""))
	})

	t.Run("excluded appointment is skipped", func(t *testing.T) {
		assert.Nil(t, FindConflict(Interval{at(10, 0), at(11, 0)}, existing, "a"))
	})
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]AppointmentStatus]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCanceled}:    true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusCanceled}:  true,
	}
	all := []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]AppointmentStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestStateMachineClosure(t *testing.T) {
	targets := []AppointmentStatus{StatusConfirmed, StatusCompleted, StatusCanceled, StatusPending}

	// перебираем все последовательности до четырех переходов из pending
	var walk func(state AppointmentStatus, depth int)
	walk = func(state AppointmentStatus, depth int) {
		require.True(t, state.IsValid())
		if depth == 0 {
			return
		}
		for _, to := range targets {
			next := state
			if CanTransition(state, to) {
				next = to
			}
			if state.IsTerminal() {
				assert.Equal(t, state, next, "terminal state %s must not change", state)
			}
			walk(next, depth-1)
		}
	}
	walk(StatusPending, 4)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseStatus("in_progress")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestIdentity_CanSetStatus(t *testing.T) {
	appt := &Appointment{ProviderID: "p1", CustomerID: "c1"}

	provider := ProviderIdentity("p1")
	customer := CustomerIdentity("c1")
	stranger := CustomerIdentity("c2")
	otherProvider := ProviderIdentity("p2")

	assert.True(t, provider.CanSetStatus(appt, StatusConfirmed))
	assert.True(t, provider.CanSetStatus(appt, StatusCompleted))
	assert.True(t, provider.CanSetStatus(appt, StatusCanceled))

	assert.False(t, customer.CanSetStatus(appt, StatusConfirmed))
	assert.False(t, customer.CanSetStatus(appt, StatusCompleted))
	assert.True(t, customer.CanSetStatus(appt, StatusCanceled))

	for _, id := range []Identity{stranger, otherProvider, Anonymous()} {
		for _, to := range []AppointmentStatus{StatusConfirmed, StatusCompleted, StatusCanceled} {
			assert.False(t, id.CanSetStatus(appt, to), "%+v -> %s", id, to)
		}
	}
}

func TestIdentity_RoleIsBoundToReference(t *testing.T) {
	appt := &Appointment{ProviderID: "u1", CustomerID: "u2"}

	// клиент с id, равным id мастера, не является мастером
	assert.False(t, CustomerIdentity("u1").IsParty(appt))
	assert.False(t, ProviderIdentity("u2").IsParty(appt))
	assert.False(t, Identity{Role: RoleProvider}.IsAuthenticated())
}

func TestBusinessHours(t *testing.T) {
	closed := &BusinessHours{OpeningTime: "09:00", ClosingTime: "09:00"}
	assert.True(t, closed.IsClosed())

	open := &BusinessHours{OpeningTime: "09:00", ClosingTime: "18:00"}
	require.False(t, open.IsClosed())

	window, err := open.Window(at(0, 0))
	require.NoError(t, err)
	assert.Equal(t, at(9, 0), window.Start)
	assert.Equal(t, at(18, 0), window.End)
}
