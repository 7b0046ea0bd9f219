package pkgrouter

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglocal"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglog"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkguid"
)

// Generator generates a unique string (used for correlation/request IDs).
type Generator interface {
	Generate() string
}

// HeaderRequestID is the header used to receive and echo request IDs.
const HeaderRequestID = "X-Request-Id"

// ResolveRequestID returns the caller-supplied request ID from h verbatim, or a
// new ID from gen when the header is absent or empty. Values that carry CR or
// LF are treated as absent.
func ResolveRequestID(h http.Header, gen Generator) string {
	if v := h.Get(HeaderRequestID); v != "" && !strings.ContainsAny(v, "\r\n") {
		return v
	}
	if gen == nil {
		gen = pkguid.NewUUID()
	}
	return gen.Generate()
}

// CorrelationFairing assigns every request an ID and echoes it in the
// X-Request-Id response header.
type CorrelationFairing struct {
	uid Generator
}

// NewCorrelationFairing returns a CorrelationFairing generating IDs with uid.
// A nil uid generates UUIDs.
func NewCorrelationFairing(uid Generator) *CorrelationFairing {
	if uid == nil {
		uid = pkguid.NewUUID()
	}
	return &CorrelationFairing{uid: uid}
}

// OnRequest resolves the request ID and stores it for the request. A second
// call for the same request keeps the first ID.
func (f *CorrelationFairing) OnRequest(r *http.Request) {
	c, ok := pkglocal.FromRequest(r)
	if !ok {
		slog.WarnContext(r.Context(), "correlation fairing: request carries no cache", "path", r.URL.Path)
		return
	}

	pkglocal.GetOrInit(c, func() pkglog.RequestID {
		return pkglog.RequestID(ResolveRequestID(r.Header, f.uid))
	})
}

// OnResponse sets the response header when the request has an ID.
func (f *CorrelationFairing) OnResponse(r *http.Request, header http.Header, _ int) {
	id, err := pkglog.CurrentRequestID(r.Context())
	if err != nil {
		return
	}
	header.Set(HeaderRequestID, id)
}

// CurrentRequestID returns the ID assigned to r by the correlation fairing.
func CurrentRequestID(r *http.Request) (string, error) {
	return pkglog.CurrentRequestID(r.Context())
}
