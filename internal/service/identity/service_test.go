package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/memory"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/logger"
)

type slowRepository struct{}

func (slowRepository) GetProvider(ctx context.Context, _ string) (*domain.Profile, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowRepository) GetCustomer(ctx context.Context, _ string) (*domain.Profile, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type brokenRepository struct{}

func (brokenRepository) GetProvider(context.Context, string) (*domain.Profile, error) {
	return nil, errors.New("connection refused")
}

func (brokenRepository) GetCustomer(context.Context, string) (*domain.Profile, error) {
	return nil, errors.New("connection refused")
}

func TestResolve(t *testing.T) {
	repo := memory.NewProfileRepository()
	repo.AddProvider("prov-1", "Studio Lena")
	repo.AddCustomer("cust-1", "Anna")
	repo.AddProvider("both", "Salon")
	repo.AddCustomer("both", "Salon Owner")

	svc := NewService(repo, time.Second, logger.NewNop())
	ctx := context.Background()

	tests := []struct {
		name     string
		callerID string
		want     domain.Identity
		wantErr  error
	}{
		{name: "anonymous", callerID: "", want: domain.Anonymous()},
		{name: "provider", callerID: "prov-1", want: domain.ProviderIdentity("prov-1")},
		{name: "customer", callerID: "cust-1", want: domain.CustomerIdentity("cust-1")},
		{name: "provider wins", callerID: "both", want: domain.ProviderIdentity("both")},
		{name: "unknown", callerID: "ghost", want: domain.Anonymous(), wantErr: ErrUnknownCaller},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Resolve(ctx, tt.callerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_FailsClosedOnTimeout(t *testing.T) {
	svc := NewService(slowRepository{}, 20*time.Millisecond, logger.NewNop())

	started := time.Now()
	got, err := svc.Resolve(context.Background(), "prov-1")

	assert.ErrorIs(t, err, ErrIdentityUnavailable)
	assert.False(t, got.IsAuthenticated())
	assert.Less(t, time.Since(started), time.Second)
}

func TestResolve_BackendError(t *testing.T) {
	svc := NewService(brokenRepository{}, time.Second, logger.NewNop())

	_, err := svc.Resolve(context.Background(), "prov-1")
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}
