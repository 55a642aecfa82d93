package businesshours

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/memory"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/businesshours/models"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/logger"
)

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewBusinessHoursRepository(), logger.NewNop())
	owner := domain.ProviderIdentity("prov-1")

	week, err := svc.Upsert(ctx, owner, &models.UpsertRequest{
		ProviderID: "prov-1",
		Days: []models.DayHours{
			{DayOfWeek: 1, OpeningTime: "09:00", ClosingTime: "17:00"},
			{DayOfWeek: 0, OpeningTime: "00:00", ClosingTime: "00:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, week.Days, 2)

	assert.Equal(t, 0, week.Days[0].DayOfWeek)
	assert.True(t, week.Days[0].IsClosed)
	assert.Equal(t, "09:00", week.Days[1].OpeningTime)
	assert.False(t, week.Days[1].IsClosed)
}

func TestUpsert_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewBusinessHoursRepository(), logger.NewNop())

	tests := []struct {
		name    string
		caller  domain.Identity
		days    []models.DayHours
		wantErr error
	}{
		{
			name:    "other provider",
			caller:  domain.ProviderIdentity("prov-2"),
			days:    []models.DayHours{{DayOfWeek: 1, OpeningTime: "09:00", ClosingTime: "17:00"}},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "customer",
			caller:  domain.CustomerIdentity("prov-1"),
			days:    []models.DayHours{{DayOfWeek: 1, OpeningTime: "09:00", ClosingTime: "17:00"}},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "closing before opening",
			caller:  domain.ProviderIdentity("prov-1"),
			days:    []models.DayHours{{DayOfWeek: 1, OpeningTime: "17:00", ClosingTime: "09:00"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed time",
			caller:  domain.ProviderIdentity("prov-1"),
			days:    []models.DayHours{{DayOfWeek: 1, OpeningTime: "9am", ClosingTime: "17:00"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "weekday out of range",
			caller:  domain.ProviderIdentity("prov-1"),
			days:    []models.DayHours{{DayOfWeek: 7, OpeningTime: "09:00", ClosingTime: "17:00"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no days",
			caller:  domain.ProviderIdentity("prov-1"),
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, tt.caller, &models.UpsertRequest{ProviderID: "prov-1", Days: tt.days})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	week, err := svc.GetWeek(ctx, "prov-1")
	require.NoError(t, err)
	assert.Empty(t, week.Days)
}
