// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Session ID propagation for list screens
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	import "catalog-browser/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger(os.Stderr)
//	    ctx, logger := logging.WithSession(context.Background(), logger)
//	    logger.Info("session started")
//	}
package logging
