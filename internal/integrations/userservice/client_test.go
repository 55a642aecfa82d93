package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/logger"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/providers/prov-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"prov-1","role":"provider","name":"Studio Lena"}`))
	})
	mux.HandleFunc("/internal/customers/cust-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cust-1","role":"customer","name":"Anna"}`))
	})
	// профиль клиента с неверной ролью
	mux.HandleFunc("/internal/customers/odd", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"odd","role":"provider","name":"Odd"}`))
	})
	mux.HandleFunc("/internal/customers/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/internal/customers/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Profiles(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL, time.Second, logger.NewNop())
	ctx := context.Background()

	p, err := c.GetProvider(ctx, "prov-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.Profile{ID: "prov-1", Role: domain.RoleProvider, Name: "Studio Lena"}, p)

	cust, err := c.GetCustomer(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", cust.Name)

	_, err = c.GetProvider(ctx, "cust-1")
	assert.ErrorIs(t, err, storage.ErrProfileNotFound)

	_, err = c.GetCustomer(ctx, "odd")
	assert.ErrorIs(t, err, storage.ErrProfileNotFound)

	_, err = c.GetCustomer(ctx, "broken")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Timeout(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL, 50*time.Millisecond, logger.NewNop())

	_, err := c.GetCustomer(context.Background(), "slow")
	assert.ErrorIs(t, err, ErrInternal)
}
