package pkglog

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgerror"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglocal"
)

// RequestID is the correlation ID of the current request as stored in the
// request-scoped cache.
type RequestID string

// CurrentRequestID returns the correlation ID stored for the request that owns
// ctx.
//
// It fails with pkgerror.ErrMissingContext when the correlation middleware has
// not run for this request; callers must surface that as a server fault.
func CurrentRequestID(ctx context.Context) (string, error) {
	c, ok := pkglocal.FromContext(ctx)
	if !ok {
		return "", pkgerror.NewMissingContext("request id")
	}

	id, ok := pkglocal.Get[RequestID](c)
	if !ok || id == "" {
		return "", pkgerror.NewMissingContext("request id")
	}

	return string(id), nil
}

// Scope is a set of fields that decorates every record logged with a context
// carrying it. Values are read at log time, so fields recorded after WithScope
// still show up.
type Scope interface {
	LogAttrs() []slog.Attr
}

type scopeContextKey struct{}

// WithScope returns a copy of ctx carrying s.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, s)
}

func scopeFromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeContextKey{}).(Scope)
	return s, ok && s != nil
}
