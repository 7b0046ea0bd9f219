package pkgtrace

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglocal"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglog"
	"go.opentelemetry.io/otel/trace"
)

// Fairing opens a span when a request starts and closes it once the response
// status is final.
type Fairing struct {
	tracer trace.Tracer
}

// NewFairing returns a Fairing creating spans with tracer.
func NewFairing(tracer trace.Tracer) *Fairing {
	return &Fairing{tracer: tracer}
}

// OnRequest opens the request span. A second call for the same request is a
// no-op.
func (f *Fairing) OnRequest(r *http.Request) {
	c, ok := pkglocal.FromRequest(r)
	if !ok {
		slog.WarnContext(r.Context(), "span fairing: request carries no cache", "path", r.URL.Path)
		return
	}

	pkglocal.GetOrInit(c, func() *Span {
		return f.open(r)
	})
}

func (f *Fairing) open(r *http.Request) *Span {
	_, span := f.tracer.Start(
		context.WithoutCancel(r.Context()),
		r.Method+" "+r.URL.Path,
		trace.WithNewRoot(),
		trace.WithSpanKind(trace.SpanKindServer),
	)

	s := newSpan(span)
	s.Record(FieldMethod, r.Method)
	s.Record(FieldPath, r.URL.Path)
	if id, err := pkglog.CurrentRequestID(r.Context()); err == nil {
		s.Record(FieldRequestID, id)
	}

	return s
}

// OnResponse records status on the request span, logs the completion line
// inside it, and closes it. Requests without a span (for example when the
// request hook never ran) are only logged.
func (f *Fairing) OnResponse(r *http.Request, _ http.Header, status int) {
	s, err := CurrentSpan(r)
	if err != nil {
		slog.DebugContext(r.Context(), "no span for request", "path", r.URL.Path, "status", status)
		return
	}
	defer s.Close()

	ctx, exit := s.Enter(r.Context())
	defer exit()

	s.RecordStatus(status)

	if id, err := pkglog.CurrentRequestID(ctx); err == nil {
		slog.InfoContext(ctx,
			fmt.Sprintf("Returning request %s with %d %s", id, status, http.StatusText(status)),
			"latency_ms", s.Elapsed().Milliseconds(),
		)
	}
}

// OnAbort closes the span of a request that never produced a response. No
// status is recorded.
func (f *Fairing) OnAbort(r *http.Request) {
	s, err := CurrentSpan(r)
	if err != nil {
		return
	}

	slog.DebugContext(r.Context(), "request aborted before response", "path", r.URL.Path)
	s.Close()
}
