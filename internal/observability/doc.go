// Package observability groups the logging, metrics and tracing helpers used
// by the browse engine, the catalog API client and the CLI.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracer and HTTP client transport
//
// Example usage:
//
//	import (
//	    "catalog-browser/internal/observability/logging"
//	    "catalog-browser/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger(os.Stderr)
//	    logger.Info("application started")
//
//	    metrics.SetVisibleItems("client", 10)
//	}
package observability
