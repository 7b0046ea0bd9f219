package pkgtrace

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgerror"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglocal"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span field names.
const (
	FieldMethod     = "http.method"
	FieldPath       = "http.target"
	FieldRoute      = "http.route"
	FieldStatusCode = "http.status_code"
	FieldRequestID  = "request_id"
	FieldOutput     = "output"
)

// Span is the tracing context of a single request.
type Span struct {
	span    trace.Span
	started time.Time

	mu     sync.Mutex
	fields map[string]any
	order  []string
	depth  int
	closed bool
}

func newSpan(s trace.Span) *Span {
	return &Span{
		span:    s,
		started: time.Now(),
		fields:  make(map[string]any),
	}
}

// Record sets a field on the span. Writes after Close are ignored.
func (s *Span) Record(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if _, ok := s.fields[key]; !ok {
		s.order = append(s.order, key)
	}
	s.fields[key] = value
	s.span.SetAttributes(toAttribute(key, value))
}

// RecordStatus records the response status code and marks 5xx responses as
// errors on the underlying span.
func (s *Span) RecordStatus(code int) {
	s.Record(FieldStatusCode, code)
	if code >= http.StatusInternalServerError {
		s.span.SetStatus(codes.Error, http.StatusText(code))
	}
}

// field returns the value recorded under key.
func (s *Span) field(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.fields[key]
	return v, ok
}

// LogAttrs implements pkglog.Scope.
func (s *Span) LogAttrs() []slog.Attr {
	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := make([]slog.Attr, 0, len(s.order))
	for _, k := range s.order {
		attrs = append(attrs, slog.Any(k, s.fields[k]))
	}
	return attrs
}

// Enter marks the span active and returns a context carrying it, together
// with the func that exits it. The exit func is idempotent and must be
// deferred by the caller. Enters may nest.
func (s *Span) Enter(ctx context.Context) (context.Context, func()) {
	s.mu.Lock()
	s.depth++
	s.mu.Unlock()

	ctx = trace.ContextWithSpan(ctx, s.span)
	ctx = pkglog.WithScope(ctx, s)

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			s.mu.Lock()
			s.depth--
			s.mu.Unlock()
		})
	}
}

// active reports whether the span has been entered and not yet exited.
func (s *Span) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.depth > 0
}

// Close ends the span. Only the first call has an effect.
func (s *Span) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.span.End()
}

// isClosed reports whether Close has been called.
func (s *Span) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Elapsed returns the time since the span was opened.
func (s *Span) Elapsed() time.Duration {
	return time.Since(s.started)
}

// CurrentSpan returns the span opened for r.
//
// It fails with pkgerror.ErrMissingContext when the span fairing has not run
// for this request; callers must surface that as a server fault.
func CurrentSpan(r *http.Request) (*Span, error) {
	c, ok := pkglocal.FromRequest(r)
	if !ok {
		return nil, pkgerror.NewMissingContext("span")
	}

	s, ok := pkglocal.Get[*Span](c)
	if !ok || s == nil {
		return nil, pkgerror.NewMissingContext("span")
	}

	return s, nil
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case fmt.Stringer:
		return attribute.Stringer(key, v)
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
