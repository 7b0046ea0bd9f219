package pkgtrace

import (
	"context"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func newNoopSpan() *Span {
	_, s := noop.NewTracerProvider().Tracer("test").Start(context.Background(), "test")
	return newSpan(s)
}

func TestSpanEnterExitBalanced(t *testing.T) {
	span := newNoopSpan()

	ctx, exitOuter := span.Enter(context.Background())
	if !span.active() {
		t.Fatalf("expected active after enter")
	}
	if got := trace.SpanFromContext(ctx); got != span.span {
		t.Fatalf("expected otel span in entered context")
	}

	_, exitInner := span.Enter(ctx)
	exitInner()
	exitInner()
	if !span.active() {
		t.Fatalf("expected outer enter to keep the span active")
	}

	exitOuter()
	if span.active() {
		t.Fatalf("expected inactive after all exits")
	}
}

func TestSpanExitOnPanic(t *testing.T) {
	span := newNoopSpan()

	func() {
		defer func() { _ = recover() }()

		_, exit := span.Enter(context.Background())
		defer exit()
		panic("boom")
	}()

	if span.active() {
		t.Fatalf("expected span exited after panic")
	}
}

func TestSpanRecordAfterCloseIgnored(t *testing.T) {
	span := newNoopSpan()
	span.Record(FieldOutput, "before")
	span.Close()
	span.Close()
	span.Record(FieldOutput, "after")

	if got, _ := span.field(FieldOutput); got != "before" {
		t.Fatalf("expected write after close to be ignored, got %v", got)
	}
}

func TestSpanLogAttrsKeepOrder(t *testing.T) {
	span := newNoopSpan()
	span.Record(FieldMethod, "GET")
	span.Record(FieldPath, "/abc")
	span.Record(FieldMethod, "POST")

	attrs := span.LogAttrs()
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != FieldMethod || attrs[0].Value.String() != "POST" {
		t.Fatalf("unexpected first attr: %v", attrs[0])
	}
	if attrs[1].Key != FieldPath {
		t.Fatalf("unexpected second attr: %v", attrs[1])
	}
}

var _ interface{ LogAttrs() []slog.Attr } = (*Span)(nil)
