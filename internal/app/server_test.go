package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"tour-admin/internal/config"
	"tour-admin/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(apiURL string) config.AppConfig {
	var cfg config.AppConfig
	cfg.Server.Addr = ":0"
	cfg.Server.Env = config.EnvDevelopment
	cfg.Admin.Email = "admin@tour.com"
	cfg.Admin.Password = "admin123"
	cfg.Session.Secret = strings.Repeat("s", 32)
	cfg.API.URL = apiURL
	cfg.API.Timeout = 5 * time.Second
	cfg.Stats.PushInterval = time.Minute
	return cfg
}

func newTestServer(t *testing.T, backend http.HandlerFunc) *Server {
	t.Helper()
	api := httptest.NewServer(backend)
	t.Cleanup(api.Close)

	srv, err := NewServer(testConfig(api.URL), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func signIn(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()
	form := url.Values{"email": {"admin@tour.com"}, "password": {"admin123"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := do(srv, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	t.Fatalf("no session cookie issued")
	return nil
}

func TestPublicRoutes(t *testing.T) {
	srv := newTestServer(t, func(http.ResponseWriter, *http.Request) {})

	w := do(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(srv, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// an admin session does not bounce the login page to the dashboard
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(signIn(t, srv))
	w = do(srv, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), `action="/login"`)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	srv := newTestServer(t, func(http.ResponseWriter, *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set("Accept", "application/json")
	w := do(srv, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestDashboardRequiresSignIn(t *testing.T) {
	srv := newTestServer(t, func(http.ResponseWriter, *http.Request) {})

	for _, path := range []string{"/dashboard", "/dashboard/api/stats", "/dashboard/api/bookings/1"} {
		w := do(srv, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestSignInThenUseDashboard(t *testing.T) {
	var gotAuth string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"totalBookings":3}`)) //nolint:errcheck
	})

	cookie := signIn(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/api/stats", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)
	w := do(srv, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalBookings":3`)
	assert.Equal(t, "Bearer "+cookie.Value, gotAuth)
}

func TestMetricsExposed(t *testing.T) {
	srv := newTestServer(t, func(http.ResponseWriter, *http.Request) {})

	do(srv, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	w := do(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), `touradmin_guard_decisions_total{decision="redirect"} 1`)
}
