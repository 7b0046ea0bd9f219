package pkgtrace

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestOTLPExporterShipsEndedSpans(t *testing.T) {
	var exported atomic.Int32
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v1/traces" {
			exported.Add(1)
		}
		w.Header().Set("Content-Type", "application/x-protobuf")
		w.WriteHeader(http.StatusOK)
	}))
	defer collector.Close()

	exporter, err := NewOTLPExporter(t.Context(), collector.URL)
	if err != nil {
		t.Fatalf("NewOTLPExporter: %v", err)
	}

	provider := NewProvider("test", sdktrace.WithSyncer(exporter))
	_, span := provider.Tracer(TracerName).Start(t.Context(), "GET /abc")
	span.End()

	if err := provider.Shutdown(t.Context()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if exported.Load() == 0 {
		t.Fatalf("expected the collector to receive the ended span")
	}
}
