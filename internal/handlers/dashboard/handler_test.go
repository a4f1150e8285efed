package dashboard

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"tour-admin/internal/domain/auth"
	"tour-admin/internal/middleware"
	"tour-admin/internal/pkg/response"
	"tour-admin/internal/pkg/session"
	service "tour-admin/internal/service/dashboard"
	"tour-admin/internal/web"
	"tour-admin/pkg/client"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type adminReader struct{}

func (adminReader) Read(*http.Request) (*session.Session, bool) {
	return &session.Session{
		JTI:      "jti-1",
		Token:    "session-token",
		Identity: auth.Identity{ID: 1, Name: "Admin User", Email: "admin@tour.com", Role: auth.RoleAdmin},
	}, true
}

type call struct {
	Method, Path, Body string
}

type backend struct {
	mu    sync.Mutex
	calls []call
}

func (b *backend) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.calls = append(b.calls, call{r.Method, r.URL.Path, string(body)})
	b.mu.Unlock()
}

func newEngine(t *testing.T, baseURL string) *gin.Engine {
	t.Helper()
	logger := zap.NewNop()
	api := client.New(baseURL, client.OnUnauthorized(session.RequestTeardown))
	h := NewDashboardHandler(service.NewService(api, "", nil, logger), session.CookieOptions{}, logger)

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	r.Use(middleware.SessionTeardown(), middleware.NewGuard(middleware.DefaultRoutes, adminReader{}, nil, logger).Middleware())
	r.GET("/dashboard", h.Shell)
	h.RegisterRoutes(r.Group("/dashboard/api"))
	return r
}

func newBackend(t *testing.T, fn http.HandlerFunc) (*backend, string) {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		fn(w, r)
	}))
	t.Cleanup(srv.Close)
	return b, srv.URL
}

func serve(r *gin.Engine, method, path, body string, jsonCaller bool) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if jsonCaller {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "text/html")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func clearedCookie(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName {
			assert.Empty(t, ck.Value)
			assert.Less(t, ck.MaxAge, 0)
			return
		}
	}
	t.Fatalf("session cookie was not cleared")
}

var everyNamespace = []struct {
	method, path, body string
}{
	{http.MethodGet, "/dashboard/api/stats", ""},
	{http.MethodGet, "/dashboard/api/vehicles", ""},
	{http.MethodPost, "/dashboard/api/vehicles", `{"name":"Swift"}`},
	{http.MethodGet, "/dashboard/api/vehicles/7", ""},
	{http.MethodPut, "/dashboard/api/vehicles/7", `{"name":"Swift"}`},
	{http.MethodDelete, "/dashboard/api/vehicles/7", ""},
	{http.MethodGet, "/dashboard/api/tours", ""},
	{http.MethodPost, "/dashboard/api/tours", `{"name":"Coast"}`},
	{http.MethodGet, "/dashboard/api/tours/3", ""},
	{http.MethodPut, "/dashboard/api/tours/3", `{"name":"Coast"}`},
	{http.MethodDelete, "/dashboard/api/tours/3", ""},
	{http.MethodGet, "/dashboard/api/bookings", ""},
	{http.MethodGet, "/dashboard/api/bookings/42", ""},
	{http.MethodPut, "/dashboard/api/bookings/42/status", `{"status":"PAID"}`},
	{http.MethodGet, "/dashboard/api/users", ""},
	{http.MethodGet, "/dashboard/api/users/5", ""},
	{http.MethodPut, "/dashboard/api/users/5/status", `{"isActive":false}`},
	{http.MethodDelete, "/dashboard/api/users/5", ""},
	{http.MethodGet, "/dashboard/api/cities", ""},
	{http.MethodPost, "/dashboard/api/cities", `{"name":"Goa"}`},
	{http.MethodPut, "/dashboard/api/cities/2", `{"name":"Goa"}`},
	{http.MethodDelete, "/dashboard/api/cities/2", ""},
}

func TestBackendUnauthorizedTearsDownSessionFromEveryNamespace(t *testing.T) {
	_, url := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`)) //nolint:errcheck
	})
	r := newEngine(t, url)

	for _, tc := range everyNamespace {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(r, tc.method, tc.path, tc.body, true)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var body response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "/login", body.Redirect)
			clearedCookie(t, w)

			// JSON bodies always come from script callers
			if tc.body != "" {
				return
			}
			w = serve(r, tc.method, tc.path, tc.body, false)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
			clearedCookie(t, w)
		})
	}
}

func TestShellTearsDownOnBackendUnauthorized(t *testing.T) {
	_, url := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	r := newEngine(t, url)

	w := serve(r, http.MethodGet, "/dashboard", "", false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	clearedCookie(t, w)
}

func TestShellRendersStats(t *testing.T) {
	_, url := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"totalBookings":12,"totalRevenue":3400}`)) //nolint:errcheck
	})
	r := newEngine(t, url)

	w := serve(r, http.MethodGet, "/dashboard", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin User")
	assert.Contains(t, w.Body.String(), `data-stat="totalBookings">12<`)
}

func TestUpdateBookingStatusReturnsRefreshedList(t *testing.T) {
	b, url := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.Write([]byte(`{"id":42,"status":"PAID"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`[{"id":42,"status":"PAID"},{"id":43,"status":"PENDING"}]`)) //nolint:errcheck
	})
	r := newEngine(t, url)

	w := serve(r, http.MethodPut, "/dashboard/api/bookings/42/status", `{"status":"PAID"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)

	require.Len(t, b.calls, 2)
	assert.Equal(t, call{http.MethodPut, "/api/admin/bookings/42", `{"status":"PAID"}`}, b.calls[0])
	assert.Equal(t, call{http.MethodGet, "/api/admin/bookings", ""}, b.calls[1])
}

func TestValidationErrors(t *testing.T) {
	b, url := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {})
	r := newEngine(t, url)

	cases := []struct{ method, path, body string }{
		{http.MethodPut, "/dashboard/api/bookings/42/status", `{"status":"REFUNDED"}`},
		{http.MethodGet, "/dashboard/api/bookings?status=lost", ""},
		{http.MethodPut, "/dashboard/api/users/5/status", `{}`},
		{http.MethodGet, "/dashboard/api/vehicles/abc", ""},
		{http.MethodPost, "/dashboard/api/vehicles", `{"type":"BOAT"}`},
		{http.MethodPost, "/dashboard/api/cities", `{}`},
	}
	for _, tc := range cases {
		w := serve(r, tc.method, tc.path, tc.body, true)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
	}
	assert.Empty(t, b.calls)
}

func TestBackendStatusPassesThrough(t *testing.T) {
	_, url := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"vehicle not found"}`)) //nolint:errcheck
	})
	r := newEngine(t, url)

	w := serve(r, http.MethodGet, "/dashboard/api/vehicles/9", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "vehicle not found")
	for _, ck := range w.Result().Cookies() {
		assert.NotEqual(t, session.CookieName, ck.Name)
	}
}

func TestTransportErrorIsBadGateway(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()
	r := newEngine(t, url)

	w := serve(r, http.MethodGet, "/dashboard/api/cities", "", true)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestFailureEnvelopeOnSuccessStatusIsBadGateway(t *testing.T) {
	_, url := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":false,"message":"quota exceeded"}`)) //nolint:errcheck
	})
	r := newEngine(t, url)

	w := serve(r, http.MethodGet, "/dashboard/api/tours", "", true)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "quota exceeded")
}
