package pagination

import (
	"log/slog"
	"time"
)

// LogPageRequest logs an outgoing page request with structured fields.
func LogPageRequest(logger *slog.Logger, generation uint64, w *Window) {
	logger.Debug("Page requested",
		slog.String("mode", w.mode.String()),
		slog.Uint64("generation", generation),
		slog.Int("offset", w.NextOffset()),
		slog.Int("limit", w.pageSize))
}

// LogPageResult logs a page that was applied to the window.
func LogPageResult(logger *slog.Logger, generation uint64, returnedCount int, duration time.Duration, w *Window) {
	logger.Info("Page loaded",
		slog.String("mode", w.mode.String()),
		slog.Uint64("generation", generation),
		slog.Int("returned_count", returnedCount),
		slog.Int("loaded", w.loaded),
		slog.Int("total", w.total),
		slog.Bool("has_more", w.hasMore),
		slog.Int64("duration_ms", duration.Milliseconds()))
}

// LogPageError logs a failed page fetch.
func LogPageError(logger *slog.Logger, generation uint64, w *Window, err error) {
	logger.Error("Page fetch failed",
		slog.String("mode", w.mode.String()),
		slog.Uint64("generation", generation),
		slog.Int("offset", w.NextOffset()),
		slog.Int("limit", w.pageSize),
		slog.Any("error", err))
}
