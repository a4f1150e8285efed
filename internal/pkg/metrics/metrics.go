// Package metrics exposes Prometheus metrics for the dashboard service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "touradmin"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	GuardDecisions  *prometheus.CounterVec
	LoginAttempts   *prometheus.CounterVec
	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	WSClients       prometheus.Gauge
}

// NewRegistry creates a registry with Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		registry: reg,
		GuardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_decisions_total",
			Help:      "Route guard decisions on protected paths.",
		}, []string{"decision"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Sign-in attempts by result.",
		}, []string{"result"}),
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Requests sent to the booking API.",
		}, []string{"method", "status"}),
		BackendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of booking API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_clients",
			Help:      "Connected live feed clients.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.GuardDecisions,
		r.LoginAttempts,
		r.BackendRequests,
		r.BackendDuration,
		r.WSClients,
	)
	return r
}

// ObserveGuard records one guard decision.
func (r *Registry) ObserveGuard(decision string) {
	r.GuardDecisions.WithLabelValues(decision).Inc()
}

// ObserveLogin records a sign-in result (success, failure, throttled).
func (r *Registry) ObserveLogin(result string) {
	r.LoginAttempts.WithLabelValues(result).Inc()
}

// ObserveBackend records a finished booking API call. Status 0 means the
// request never got a response.
func (r *Registry) ObserveBackend(method string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	r.BackendRequests.WithLabelValues(method, code).Inc()
	r.BackendDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
