package pkglog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglocal"
	"go.opentelemetry.io/otel/trace"
)

// ErrLoggerInstalled is returned by InitLogging when the process-wide logger
// has already been installed.
var ErrLoggerInstalled = errors.New("pkglog: process-wide logger already installed")

//nolint:gochecknoglobals // process-wide install guard
var installed atomic.Bool

// InitLogging installs the handler described by cfg as the default slog
// logger. It succeeds only once per process; callers must treat an error as
// fatal and not start serving.
func InitLogging(cfg Config, w io.Writer) error {
	if !installed.CompareAndSwap(false, true) {
		return ErrLoggerInstalled
	}

	slog.SetDefault(slog.New(NewHandler(cfg, w)))

	return nil
}

// NewHandler builds the handler for cfg writing to w.
//
// Keys are normalized to make logs easier to query ("ts", "severity", and a
// short "file" for sources under internal/).
func NewHandler(cfg Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       cfg.Level.Slog(),
		AddSource:   cfg.Format == FormatJSON,
		ReplaceAttr: replaceAttr,
	}

	var base slog.Handler
	switch cfg.Format {
	case FormatJSON:
		base = slog.NewJSONHandler(w, opts)
	default:
		base = slog.NewTextHandler(w, opts)
	}

	return &contextHandler{Handler: base, service: cfg.Service}
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.TimeKey:
		a.Key = "ts"
	case slog.LevelKey:
		a.Key = "severity"
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok {
			if strings.Contains(src.File, "/internal/") {
				relPath := filepath.Join("internal", strings.SplitAfter(src.File, "/internal/")[1])
				return slog.Attr{
					Key:   "file",
					Value: slog.StringValue(fmt.Sprintf("%s:%d", relPath, src.Line)),
				}
			}
			return slog.Attr{}
		}
	}
	return a
}

type contextHandler struct {
	slog.Handler
	service string
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if c, ok := pkglocal.FromContext(ctx); ok {
		if cID, ok := pkglocal.Get[RequestID](c); ok && cID != "" {
			r.AddAttrs(slog.String("_cID", string(cID)))
		}
	}

	if s, ok := scopeFromContext(ctx); ok {
		r.AddAttrs(s.LogAttrs()...)
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	if h.service != "" {
		r.AddAttrs(slog.String("service", h.service))
	}

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), service: h.service}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), service: h.service}
}
