package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route template and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskapi_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskapi_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	// IdentityProviderCalls counts user pool calls (sign in, list users, ...).
	IdentityProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskapi_identity_provider_calls_total",
			Help: "Total number of identity provider calls",
		},
		[]string{"operation", "status"},
	)
	IdentityProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskapi_identity_provider_call_duration_seconds",
			Help:    "Identity provider call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	// RateLimited counts requests rejected by the auth rate limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskapi_rate_limited_total",
			Help: "Total number of requests rejected by rate limiting",
		},
	)
)

// ObserveIdentityProvider records one identity provider call started at start.
func ObserveIdentityProvider(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	IdentityProviderCalls.WithLabelValues(operation, status).Inc()
	IdentityProviderDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
