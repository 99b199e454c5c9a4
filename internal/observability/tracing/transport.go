package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Transport is an http.RoundTripper that wraps each outgoing request in a
// client span and injects W3C trace context headers.
type Transport struct {
	base   http.RoundTripper
	tracer trace.Tracer
}

// NewTransport wraps base. A nil base uses http.DefaultTransport; a nil
// tracer uses GetTracer().
//
// Example usage:
//
//	client := &http.Client{Transport: tracing.NewTransport(nil, nil)}
func NewTransport(base http.RoundTripper, t trace.Tracer) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if t == nil {
		t = tracer
	}
	return &Transport{base: base, tracer: t}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(req.Context(), "HTTP "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.host", req.URL.Host),
			attribute.String("http.path", req.URL.Path),
		),
	)
	defer span.End()

	req = req.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= 500 {
		span.SetStatus(codes.Error, resp.Status)
	}
	return resp, nil
}
