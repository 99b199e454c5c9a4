package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Browse metrics describe how a list screen drives its data.
var (
	// BrowseFetchTotal counts coordinator fetches by operation, mode and result.
	// result is one of: success, failure, stale
	BrowseFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_browse_fetch_total",
			Help: "Total number of browse fetches",
		},
		[]string{"operation", "mode", "result"},
	)

	// BrowseFetchDuration measures coordinator fetch duration in seconds.
	BrowseFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_browse_fetch_duration_seconds",
			Help:    "Browse fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "mode"},
	)

	// BrowseIgnoredTotal counts user actions dropped by a guard.
	// reason is one of: in_flight, no_more, not_ready, already_mounted, busy
	BrowseIgnoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_browse_ignored_total",
			Help: "Total number of browse actions ignored by a guard",
		},
		[]string{"operation", "reason"},
	)

	// BrowseStaleTotal counts responses discarded because a newer request superseded them.
	BrowseStaleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_browse_stale_responses_total",
			Help: "Total number of responses discarded as stale",
		},
		[]string{"operation"},
	)

	// BrowseVisibleItems tracks items currently shown per mode.
	BrowseVisibleItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_browse_visible_items",
			Help: "Number of items currently visible",
		},
		[]string{"mode"},
	)

	// BrowseTransitionsTotal counts state machine transitions.
	BrowseTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_browse_state_transitions_total",
			Help: "Total number of browse state transitions",
		},
		[]string{"from", "to"},
	)

	// SearchTotal counts debounced searches by result.
	// result is one of: success, failure, stale, cleared
	SearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_search_total",
			Help: "Total number of debounced searches",
		},
		[]string{"result"},
	)

	// SearchDuration measures search request duration in seconds.
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_search_duration_seconds",
			Help:    "Search request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordBrowseFetch records the outcome of a coordinator fetch.
func RecordBrowseFetch(operation, mode, result string, duration time.Duration) {
	BrowseFetchTotal.WithLabelValues(operation, mode, result).Inc()
	BrowseFetchDuration.WithLabelValues(operation, mode).Observe(duration.Seconds())
}

// RecordBrowseIgnored records an action a guard turned into a no-op.
func RecordBrowseIgnored(operation, reason string) {
	BrowseIgnoredTotal.WithLabelValues(operation, reason).Inc()
}

// RecordStaleResponse records a discarded response.
func RecordStaleResponse(operation string) {
	BrowseStaleTotal.WithLabelValues(operation).Inc()
}

// SetVisibleItems updates the visible item gauge.
func SetVisibleItems(mode string, n int) {
	BrowseVisibleItems.WithLabelValues(mode).Set(float64(n))
}

// RecordStateTransition records a state machine transition.
func RecordStateTransition(from, to string) {
	BrowseTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordSearch records a search outcome. Duration is ignored for searches
// that never reached the source.
func RecordSearch(result string, duration time.Duration) {
	SearchTotal.WithLabelValues(result).Inc()
	if duration > 0 {
		SearchDuration.Observe(duration.Seconds())
	}
}
