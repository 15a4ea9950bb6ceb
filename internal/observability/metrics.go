package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "union_portal"

var (
	registerOnce        sync.Once
	adminRequestsTotal  *prometheus.CounterVec
	adminLatencySeconds *prometheus.HistogramVec
	adminErrorsTotal    *prometheus.CounterVec
	codeClaimsTotal     *prometheus.CounterVec
	dashboardDegraded   prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors for the portal.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_requests_total",
			Help:      "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "admin_latency_seconds",
			Help:      "Latency distribution for admin API requests.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_errors_total",
			Help:      "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		codeClaimsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_code_claims_total",
			Help:      "Activity code claim outcomes (claimed, collision, exhausted).",
		}, []string{"outcome"})

		dashboardDegraded = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_degraded_total",
			Help:      "Dashboard snapshots served in degraded mode.",
		})

		prometheus.MustRegister(
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
			codeClaimsTotal,
			dashboardDegraded,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// CodeClaims exposes the counter for activity code claim outcomes.
func CodeClaims() *prometheus.CounterVec {
	RegisterMetrics()
	return codeClaimsTotal
}

// DashboardDegraded exposes the counter for degraded dashboard snapshots.
func DashboardDegraded() prometheus.Counter {
	RegisterMetrics()
	return dashboardDegraded
}
