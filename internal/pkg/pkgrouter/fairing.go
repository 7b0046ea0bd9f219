package pkgrouter

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglocal"
)

// Fairing is a pair of request lifecycle hooks.
//
// OnRequest runs before routing. OnResponse runs once the status is final and
// may still modify the response headers.
type Fairing interface {
	OnRequest(r *http.Request)
	OnResponse(r *http.Request, header http.Header, status int)
}

// Aborter is implemented by fairings that need to clean up when a request
// ends without a response.
type Aborter interface {
	OnAbort(r *http.Request)
}

// hookWriter runs the response hooks right before the status line is written.
type hookWriter struct {
	http.ResponseWriter
	r        *http.Request
	fairings []Fairing

	once sync.Once
	done bool
}

func (w *hookWriter) finalize(status int) {
	w.once.Do(func() {
		w.done = true
		for i := len(w.fairings) - 1; i >= 0; i-- {
			f := w.fairings[i]
			runHook(w.r, "response", func() { f.OnResponse(w.r, w.ResponseWriter.Header(), status) })
		}
	})
}

func (w *hookWriter) abort() {
	w.once.Do(func() {
		w.done = true
		for i := len(w.fairings) - 1; i >= 0; i-- {
			if a, ok := w.fairings[i].(Aborter); ok {
				runHook(w.r, "abort", func() { a.OnAbort(w.r) })
			}
		}
	})
}

func (w *hookWriter) WriteHeader(code int) {
	// informational responses are not final
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(code)
		return
	}

	w.finalize(code)
	w.ResponseWriter.WriteHeader(code)
}

func (w *hookWriter) Write(p []byte) (int, error) {
	w.finalize(http.StatusOK)
	return w.ResponseWriter.Write(p)
}

func (w *hookWriter) Flush() {
	w.finalize(http.StatusOK)
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

//nolint:err113 // it use dynamic error
func (w *hookWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	w.finalize(http.StatusSwitchingProtocols)
	return h.Hijack()
}

func (w *hookWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

//nolint:contextcheck // hooks log with the request context
func runHook(r *http.Request, stage string, fn func()) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(r.Context(), "fairing hook panicked", "stage", stage, "because", rvr)
		}
	}()
	fn()
}

// middlewareFairings attaches the request-scoped cache and drives fairings.
//
// A handler that returns without writing is finalized as 200, unless its
// request context is already canceled, in which case the abort hooks run
// instead. A panic escaping the handler (for example http.ErrAbortHandler)
// also runs the abort hooks before it is propagated.
func middlewareFairings(fairings ...Fairing) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, _ := pkglocal.WithCache(r.Context())
			r = r.WithContext(ctx)

			for _, f := range fairings {
				runHook(r, "request", func() { f.OnRequest(r) })
			}

			hw := &hookWriter{ResponseWriter: w, r: r, fairings: fairings}
			defer func() {
				if rvr := recover(); rvr != nil {
					hw.abort()
					panic(rvr)
				}
				if hw.done {
					return
				}
				if r.Context().Err() != nil {
					hw.abort()
					return
				}
				hw.WriteHeader(http.StatusOK)
			}()

			next.ServeHTTP(hw, r)
		})
	}
}
