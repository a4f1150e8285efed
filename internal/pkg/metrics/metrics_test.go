package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCounters(t *testing.T) {
	r := NewRegistry()

	r.ObserveGuard("allow")
	r.ObserveGuard("redirect")
	r.ObserveGuard("redirect")
	assert.Equal(t, 2.0, testutil.ToFloat64(r.GuardDecisions.WithLabelValues("redirect")))

	r.ObserveLogin("failure")
	assert.Equal(t, 1.0, testutil.ToFloat64(r.LoginAttempts.WithLabelValues("failure")))

	r.ObserveBackend(http.MethodGet, 401, 5*time.Millisecond)
	r.ObserveBackend(http.MethodPut, 0, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.BackendRequests.WithLabelValues("GET", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.BackendRequests.WithLabelValues("PUT", "error")))

	r.WSClients.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(r.WSClients))
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.ObserveLogin("success")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, `touradmin_login_attempts_total{result="success"} 1`)
}
