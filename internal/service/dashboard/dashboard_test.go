package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"tour-admin/internal/domain/auth"
	xerrors "tour-admin/internal/pkg/errors"
	"tour-admin/internal/pkg/session"
	"tour-admin/pkg/client"
	"tour-admin/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var adminSess = &session.Session{JTI: "j", Token: "session-token", Identity: auth.Identity{ID: 1, Role: auth.RoleAdmin}}

type recorded struct {
	Method, Path, Query, Auth, Body string
}

type backend struct {
	mu       sync.Mutex
	requests []recorded
	srv      *httptest.Server
}

func newBackend(t *testing.T, handler http.HandlerFunc) *backend {
	t.Helper()
	b := &backend{}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, recorded{r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("Authorization"), string(body)})
		b.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

type notes []string

func (n *notes) NotifyChanged(resource string, id int64, action string) {
	*n = append(*n, fmt.Sprintf("%s/%d/%s", resource, id, action))
}

func TestUpdateBookingStatusThenRelists(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut:
			json.NewEncoder(w).Encode(domain.Booking{ID: 42, Status: domain.BookingPaid}) //nolint:errcheck
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]domain.Booking{{ID: 42, Status: domain.BookingPaid}}) //nolint:errcheck
		}
	})
	n := &notes{}
	svc := NewService(client.New(b.srv.URL), "", n, zap.NewNop())

	list, err := svc.UpdateBookingStatus(context.Background(), adminSess, 42, domain.BookingPaid, "")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.Len(t, b.requests, 2)
	assert.Equal(t, recorded{http.MethodPut, "/api/admin/bookings/42", "", "Bearer session-token", `{"status":"PAID"}`}, b.requests[0])
	assert.Equal(t, http.MethodGet, b.requests[1].Method)
	assert.Equal(t, "/api/admin/bookings", b.requests[1].Path)
	assert.Equal(t, []string{"bookings/42/status"}, []string(*n))
}

func TestUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	b := newBackend(t, func(http.ResponseWriter, *http.Request) {})
	svc := NewService(client.New(b.srv.URL), "", nil, zap.NewNop())

	_, err := svc.UpdateBookingStatus(context.Background(), adminSess, 42, "REFUNDED", "")
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	assert.Empty(t, b.requests)

	_, err = svc.ListBookings(context.Background(), adminSess, "paid")
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestListBookingsFilter(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(`[]`)) }) //nolint:errcheck
	svc := NewService(client.New(b.srv.URL), "", nil, zap.NewNop())

	_, err := svc.ListBookings(context.Background(), adminSess, domain.BookingPending)
	require.NoError(t, err)
	assert.Equal(t, "status=PENDING", b.requests[0].Query)
}

func TestSetUserActiveThenRelists(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.Write([]byte(`{"id":5,"isActive":false}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`[{"id":5,"isActive":false}]`)) //nolint:errcheck
	})
	svc := NewService(client.New(b.srv.URL), "", nil, zap.NewNop())

	users, err := svc.SetUserActive(context.Background(), adminSess, 5, false)
	require.NoError(t, err)
	assert.False(t, users[0].IsActive)
	assert.Equal(t, `{"isActive":false}`, b.requests[0].Body)
	assert.Equal(t, "/api/admin/users", b.requests[1].Path)
}

func TestServiceTokenTakesPrecedence(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(`{}`)) }) //nolint:errcheck
	svc := NewService(client.New(b.srv.URL), "service-token", nil, zap.NewNop())

	_, err := svc.Stats(context.Background(), adminSess)
	require.NoError(t, err)
	assert.Equal(t, "Bearer service-token", b.requests[0].Auth)
}

func TestGatewayWarnsWithoutToken(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	svc := NewService(client.New("http://backend.invalid"), "", nil, zap.New(core))

	assert.True(t, svc.Gateway(adminSess).HasCredentials())
	assert.Equal(t, 0, logs.Len())

	assert.False(t, svc.Gateway(&session.Session{}).HasCredentials())
	assert.Equal(t, 1, logs.FilterMessage("gateway call without a bearer token").Len())
}

func TestBackendErrors(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"tour not found"}`)) //nolint:errcheck
	})
	svc := NewService(client.New(b.srv.URL), "", nil, zap.NewNop())

	_, err := svc.GetTour(context.Background(), adminSess, 3)
	assert.True(t, client.IsStatus(err, http.StatusNotFound))
	assert.NotErrorIs(t, err, xerrors.ErrBackendUnavailable)

	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	svc = NewService(client.New(dead.URL), "", nil, zap.NewNop())
	_, err = svc.ListCities(context.Background(), adminSess)
	assert.ErrorIs(t, err, xerrors.ErrBackendUnavailable)
}

func TestCreateCityRequiresName(t *testing.T) {
	b := newBackend(t, func(http.ResponseWriter, *http.Request) {})
	svc := NewService(client.New(b.srv.URL), "", nil, zap.NewNop())

	_, err := svc.CreateCity(context.Background(), adminSess, domain.CityInput{})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	assert.Empty(t, b.requests)
}
