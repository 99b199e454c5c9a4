// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Catalog API client metrics (duration, count, breaker state)
//   - Browse metrics (fetches, ignored actions, stale responses, visible items)
//   - Search metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint when the CLI runs with --metrics-port.
//
// Example usage:
//
//	import "catalog-browser/internal/observability/metrics"
//
//	func loadPage(ctx context.Context) {
//	    start := time.Now()
//	    // ... fetch page ...
//	    metrics.RecordBrowseFetch("load_more", "cursor", "success", time.Since(start))
//	}
package metrics
