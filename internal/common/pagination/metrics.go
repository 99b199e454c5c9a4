package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// pagesRevealed counts pages that made new items visible.
	// Labels: mode (cursor, client)
	pagesRevealed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_pagination_pages_revealed_total",
			Help: "Total number of pages revealed",
		},
		[]string{"mode"},
	)

	// windowResets counts resets caused by spec changes and refreshes.
	windowResets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_pagination_window_resets_total",
			Help: "Total number of page window resets",
		},
		[]string{"mode"},
	)

	// exhausted counts windows closed early by an empty page.
	exhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_pagination_exhausted_total",
			Help: "Total number of windows marked exhausted before reaching the reported total",
		},
		[]string{"mode"},
	)

	// PageFill tracks how full each fetched page was relative to the page size.
	PageFill = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_pagination_page_fill_ratio",
			Help:    "Fraction of the requested page size returned by the source",
			Buckets: []float64{0, 0.25, 0.5, 0.75, 1.0},
		},
		[]string{"mode"},
	)
)

// RecordPageFill records how many of the requested items a page returned.
func RecordPageFill(mode Mode, returned, requested int) {
	if requested <= 0 {
		return
	}
	PageFill.WithLabelValues(mode.String()).Observe(float64(returned) / float64(requested))
}
