package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthResponse represents a simple health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// CatalogHealthResponse reports whether the catalog API is being called.
type CatalogHealthResponse struct {
	Healthy            bool `json:"healthy"`
	CircuitBreakerOpen bool `json:"circuit_breaker_open"`
}

// breakerState is satisfied by the catalog API client.
type breakerState interface {
	CircuitOpen() bool
}

// newMetricsMux builds the handler for the metrics server.
//
// Endpoints:
//   - GET /metrics - Prometheus metrics
//   - GET /health - liveness probe, always 200
//   - GET /health/catalog - 503 while the catalog circuit breaker is open
func newMetricsMux(api breakerState) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/health/catalog", catalogHealthHandler(api))
	return mux
}

// startMetricsServer serves newMetricsMux on port until ctx is canceled.
func startMetricsServer(ctx context.Context, logger *slog.Logger, port int, api breakerState) *http.Server {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      newMetricsMux(api),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", slog.Any("error", err))
		} else {
			logger.Debug("metrics server stopped")
		}
	}()

	return server
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
}

func catalogHealthHandler(api breakerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		open := api.CircuitOpen()
		status := http.StatusOK
		if open {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(CatalogHealthResponse{
			Healthy:            !open,
			CircuitBreakerOpen: open,
		})
	}
}
