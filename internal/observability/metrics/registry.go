// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog API metrics track outbound requests to the product APIs.
var (
	// APIRequestsTotal counts catalog API requests by operation and status.
	// status is the HTTP status code, or "error" when no response arrived.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_requests_total",
			Help: "Total number of catalog API requests",
		},
		[]string{"operation", "status"},
	)

	// APIRequestDuration measures catalog API request duration in seconds.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_api_request_duration_seconds",
			Help:    "Catalog API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// APIResponseItems measures how many items a catalog response carried.
	APIResponseItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_api_response_items",
			Help:    "Number of items in catalog API responses",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"operation"},
	)

	// CircuitBreakerState tracks breaker state per upstream (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// RateLimitWaitDuration measures time spent waiting on the client-side limiter.
	RateLimitWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_api_rate_limit_wait_seconds",
			Help:    "Time spent waiting for the catalog API rate limiter",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)

// RecordAPIRequest records a catalog API request with its outcome.
func RecordAPIRequest(operation, status string, duration time.Duration, items int) {
	APIRequestsTotal.WithLabelValues(operation, status).Inc()
	APIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if items >= 0 {
		APIResponseItems.WithLabelValues(operation).Observe(float64(items))
	}
}

// SetCircuitBreakerState records the breaker state for name.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordRateLimitWait records time spent blocked on the limiter.
func RecordRateLimitWait(d time.Duration) {
	RateLimitWaitDuration.Observe(d.Seconds())
}
