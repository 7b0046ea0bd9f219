package inbound

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglog"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgtrace"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkguid"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func newRouter(t *testing.T) (*pkgrouter.Router, *tracetest.SpanRecorder, *bytes.Buffer) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logs := &bytes.Buffer{}
	slog.SetDefault(slog.New(pkglog.NewHandler(pkglog.Config{
		Format:  pkglog.FormatJSON,
		Level:   pkglog.LevelNormal,
		Service: "demo",
	}, logs)))

	spans := tracetest.NewSpanRecorder()
	provider := pkgtrace.NewProvider("demo", sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	router := pkgrouter.NewRouter(pkguid.NewUUID(), provider.Tracer(pkgtrace.TracerName))
	RegisterHTTPEndpoint(router)

	return router, spans, logs
}

func getAbc(t *testing.T, router http.Handler, requestID string) (*httptest.ResponseRecorder, AbcResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/abc", nil)
	if requestID != "" {
		req.Header.Set(pkgrouter.HeaderRequestID, requestID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var env envelope[AbcResponse]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode abc response: %v", err)
	}
	if env.Message != "Hello World" {
		t.Fatalf("unexpected message: %q", env.Message)
	}

	return rec, env.Data
}

func logLines(t *testing.T, logs *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(logs.Bytes()))
	for sc.Scan() {
		var line map[string]any
		if err := json.Unmarshal(sc.Bytes(), &line); err != nil {
			t.Fatalf("decode log line %q: %v", sc.Text(), err)
		}
		lines = append(lines, line)
	}
	return lines
}

func TestAbcWithInboundRequestID(t *testing.T) {
	router, spans, logs := newRouter(t)

	rec, body := getAbc(t, router, "abc-123")

	if got := rec.Header().Get(pkgrouter.HeaderRequestID); got != "abc-123" {
		t.Fatalf("expected header abc-123, got %q", got)
	}
	if body.RequestID != "abc-123" {
		t.Fatalf("expected body requestId abc-123, got %q", body.RequestID)
	}

	var hello, done bool
	for _, line := range logLines(t, logs) {
		msg, _ := line["msg"].(string)
		switch {
		case msg == "Hello World":
			hello = true
			if line["_cID"] != "abc-123" || line[pkgtrace.FieldRequestID] != "abc-123" {
				t.Fatalf("hello line not correlated: %v", line)
			}
		case strings.Contains(msg, "abc-123") && strings.Contains(msg, "404"):
			done = true
			if line[pkgtrace.FieldStatusCode] != float64(http.StatusNotFound) {
				t.Fatalf("completion line without status field: %v", line)
			}
		}
	}
	if !hello || !done {
		t.Fatalf("expected hello and completion lines, got:\n%s", logs.String())
	}

	ended := spans.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(ended))
	}

	attrs := map[string]any{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	if attrs[pkgtrace.FieldStatusCode] != int64(http.StatusNotFound) {
		t.Fatalf("expected span status 404, got %v", attrs[pkgtrace.FieldStatusCode])
	}
	if attrs[pkgtrace.FieldRoute] != "/abc" {
		t.Fatalf("expected span route /abc, got %v", attrs[pkgtrace.FieldRoute])
	}

	output, _ := attrs[pkgtrace.FieldOutput].(string)
	var recorded AbcResponse
	if err := json.Unmarshal([]byte(output), &recorded); err != nil {
		t.Fatalf("decode output field %q: %v", output, err)
	}
	if recorded != body {
		t.Fatalf("output field %+v does not match body %+v", recorded, body)
	}
}

func TestAbcGeneratesRequestID(t *testing.T) {
	router, _, _ := newRouter(t)

	first, body := getAbc(t, router, "")
	second, _ := getAbc(t, router, "")

	id := first.Header().Get(pkgrouter.HeaderRequestID)
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.String() != id {
		t.Fatalf("expected canonical uuid, got %q", id)
	}
	if body.RequestID != id {
		t.Fatalf("body requestId %q differs from header %q", body.RequestID, id)
	}
	if other := second.Header().Get(pkgrouter.HeaderRequestID); other == id {
		t.Fatalf("expected distinct ids, got %q twice", id)
	}
}
