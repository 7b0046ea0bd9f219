// Package pkglog contains logging helpers used across the application.
//
// It is built around slog and keeps logs consistent by:
//   - Resolving the configured render mode and severity once into a handler.
//   - Installing that handler as the process-wide default exactly once.
//   - Attaching the request correlation ID, the fields of the active span,
//     and the trace/span IDs (when present) to each log record.
package pkglog
