// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created through the global tracer returned by GetTracer, and
// outgoing catalog API requests are traced by wrapping the HTTP client's
// transport with NewTransport. No exporter is configured here; the process
// installs a TracerProvider if it wants spans exported.
//
// Example usage:
//
//	import "catalog-browser/internal/observability/tracing"
//
//	client := &http.Client{Transport: tracing.NewTransport(nil, nil)}
//	ctx, span := tracing.GetTracer().Start(ctx, "browse.Mount")
//	defer span.End()
package tracing
