package relationships

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/memory"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/logger"
)

func newAppointment(status domain.AppointmentStatus) *domain.Appointment {
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:         "appt-1",
		ProviderID: "prov-1",
		CustomerID: "cust-1",
		Price:      40,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     status,
	}
}

func TestHandle_CountsCreatedAndCompletedVisits(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRelationshipRepository()
	svc := NewService(repo, logger.NewNop())

	appt := newAppointment(domain.StatusPending)
	require.NoError(t, svc.Handle(ctx, events.New(events.AppointmentCreated, appt, time.Now())))

	appt.Status = domain.StatusConfirmed
	require.NoError(t, svc.Handle(ctx, events.StatusChanged(appt, domain.StatusPending, time.Now())))

	appt.Status = domain.StatusCompleted
	require.NoError(t, svc.Handle(ctx, events.StatusChanged(appt, domain.StatusConfirmed, time.Now())))

	require.NoError(t, svc.Handle(ctx, events.New(events.AppointmentDeleted, appt, time.Now())))

	rel, err := repo.Get(ctx, "prov-1", "cust-1")
	require.NoError(t, err)
	assert.Equal(t, 2, rel.VisitCount)
	assert.InDelta(t, 80.0, rel.TotalSpent, 0.001)
	assert.Equal(t, appt.StartTime, rel.LastVisit)
}

func TestGet_OnlyParties(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRelationshipRepository()
	svc := NewService(repo, logger.NewNop())

	_, err := svc.Get(ctx, domain.ProviderIdentity("prov-1"), "prov-1", "cust-1")
	assert.ErrorIs(t, err, ErrRelationshipNotFound)

	require.NoError(t, svc.RecordVisit(ctx, newAppointment(domain.StatusPending)))

	rel, err := svc.Get(ctx, domain.ProviderIdentity("prov-1"), "prov-1", "cust-1")
	require.NoError(t, err)
	assert.Equal(t, 1, rel.VisitCount)

	_, err = svc.Get(ctx, domain.ProviderIdentity("prov-2"), "prov-1", "cust-1")
	assert.ErrorIs(t, err, ErrAccessDenied)

	rel, err = svc.Get(ctx, domain.CustomerIdentity("cust-1"), "prov-1", "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "prov-1", rel.ProviderID)

	_, err = svc.Get(ctx, domain.CustomerIdentity("cust-2"), "prov-1", "cust-1")
	assert.ErrorIs(t, err, ErrAccessDenied)

	// id клиента в роли мастера не подходит
	_, err = svc.Get(ctx, domain.ProviderIdentity("cust-1"), "prov-1", "cust-1")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Get(ctx, domain.Anonymous(), "prov-1", "cust-1")
	assert.ErrorIs(t, err, ErrAccessDenied)
}
