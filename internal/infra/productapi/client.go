// Package productapi implements the catalog collaborators on top of the
// public DummyJSON product API and the Fake Store category endpoint.
package productapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-browser/internal/domain/entity"
	"catalog-browser/internal/observability/logging"
	"catalog-browser/internal/observability/metrics"
	"catalog-browser/internal/observability/tracing"
	"catalog-browser/internal/resilience/circuitbreaker"
	"catalog-browser/internal/resilience/retry"
	"catalog-browser/internal/usecase/browse"
	"catalog-browser/internal/utils/text"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

var (
	_ browse.PageSource    = (*Client)(nil)
	_ browse.CatalogSource = (*Client)(nil)
	_ browse.SearchSource  = (*Client)(nil)
)

// Client talks to the catalog APIs. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
	tracer     trace.Tracer
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTracer sets the tracer used for operation and request spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithLogger sets the logger. Without it the logger is taken from the request context.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		breaker: circuitbreaker.New(cfg.Breaker),
		tracer:  tracing.GetTracer(),
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	} else {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: tracing.NewTransport(nil, c.tracer),
		}
	}
	return c
}

// CircuitOpen reports whether the breaker is currently rejecting requests.
func (c *Client) CircuitOpen() bool {
	return c.breaker.IsOpen()
}

// FetchPage returns limit items starting at offset.
func (c *Client) FetchPage(ctx context.Context, limit, offset int) (browse.Page, error) {
	if limit <= 0 || offset < 0 {
		return browse.Page{}, fmt.Errorf("%w: limit=%d offset=%d", entity.ErrInvalidInput, limit, offset)
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(offset))

	items, total, err := c.products(ctx, "fetch_page", c.productsURL("", q))
	if err != nil {
		return browse.Page{}, err
	}
	return browse.Page{Items: items, Total: total}, nil
}

// FetchAll returns the whole collection in one request.
func (c *Client) FetchAll(ctx context.Context) ([]entity.Item, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.cfg.AllLimit))

	items, _, err := c.products(ctx, "fetch_all", c.productsURL("", q))
	return items, err
}

// Search runs a free-text query. A blank query returns no items without a request.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]entity.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Item{}, nil
	}
	if limit <= 0 {
		limit = browse.DefaultSearchLimit
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	items, _, err := c.products(ctx, "search", c.productsURL("/search", q))
	return items, err
}

// FetchCategories returns the category keys offered by the filter editor.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	const op = "fetch_categories"
	ctx, span := c.startSpan(ctx, op)
	defer span.End()

	start := time.Now()
	body, err := c.get(ctx, op, c.cfg.CategoriesURL)
	if err != nil {
		c.finish(ctx, span, op, start, -1, err)
		return nil, err
	}
	cats, err := decodeCategories(body)
	c.finish(ctx, span, op, start, len(cats), err)
	return cats, err
}

func (c *Client) products(ctx context.Context, op, rawURL string) ([]entity.Item, int, error) {
	ctx, span := c.startSpan(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.String("catalog.url", rawURL))

	start := time.Now()
	body, err := c.get(ctx, op, rawURL)
	if err != nil {
		c.finish(ctx, span, op, start, -1, err)
		return nil, 0, err
	}
	items, total, err := decodeProducts(body)
	c.finish(ctx, span, op, start, len(items), err)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (c *Client) productsURL(suffix string, q url.Values) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/products" + suffix + "?" + q.Encode()
}

// get fetches rawURL through the retry loop, the rate limiter and the
// circuit breaker. Every failure is reported as entity.ErrTransport.
func (c *Client) get(ctx context.Context, op, rawURL string) ([]byte, error) {
	var body []byte
	err := retry.WithBackoff(ctx, c.cfg.Retry, func() error {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		metrics.RecordRateLimitWait(time.Since(waitStart))

		b, err := circuitbreaker.Do(c.breaker, func() ([]byte, error) {
			return c.do(ctx, rawURL)
		})
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", entity.ErrTransport, op, err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: snippet(body)}
	}
	return body, nil
}

func (c *Client) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "productapi."+op,
		trace.WithAttributes(attribute.String("catalog.operation", op)))
}

func (c *Client) finish(ctx context.Context, span trace.Span, op string, start time.Time, items int, err error) {
	dur := time.Since(start)
	logger := c.loggerFor(ctx)
	if err != nil {
		status := statusOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		metrics.RecordAPIRequest(op, status, dur, -1)
		logger.Warn("Catalog request failed",
			slog.String("operation", op),
			slog.String("status", status),
			slog.Duration("duration", dur),
			slog.Any("error", err))
		return
	}
	span.SetAttributes(attribute.Int("catalog.items", items))
	metrics.RecordAPIRequest(op, "success", dur, items)
	logger.Debug("Catalog request completed",
		slog.String("operation", op),
		slog.Int("items", items),
		slog.Duration("duration", dur))
}

func (c *Client) loggerFor(ctx context.Context) *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}

// statusOf maps an error to a low-cardinality metrics label.
func statusOf(err error) string {
	var httpErr *retry.HTTPError
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case circuitbreaker.IsRejection(err):
		return "circuit_open"
	case errors.As(err, &httpErr):
		return "http_" + strconv.Itoa(httpErr.StatusCode)
	case errors.Is(err, entity.ErrMalformedResponse):
		return "malformed"
	default:
		return "error"
	}
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty body"
	}
	return text.Truncate(s, limit)
}
