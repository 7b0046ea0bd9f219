// Package pkgtrace opens one OpenTelemetry span per HTTP request and closes it
// when the response status is known.
//
// The span is memoized in the request-scoped cache (see pkglocal) by the
// Fairing's request hook and finalized by its response hook, which records
// http.status_code and logs the completion line while the span is entered.
// Handlers read the span with CurrentSpan and may record fields on it (for
// example "output") until the response is produced.
//
// Entering a span is a scoped acquisition:
//
//	ctx, exit := span.Enter(r.Context())
//	defer exit()
//	slog.InfoContext(ctx, "inside the span")
package pkgtrace
