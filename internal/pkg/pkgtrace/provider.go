package pkgtrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TracerName is the instrumentation name used for request spans.
const TracerName = "github.com/shandysiswandi/reqtrace/internal/pkg/pkgtrace"

// NewProvider builds the SDK tracer provider for service. Every request span
// is recorded; extra options (span processors, exporters) are appended.
//
// Without an exporter ended spans are discarded and span fields only reach
// operators through the log lines written inside the span.
func NewProvider(service string, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	base := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", service))),
	}

	return sdktrace.NewTracerProvider(append(base, opts...)...)
}

// NewOTLPExporter returns an exporter sending spans over OTLP/HTTP to
// endpointURL (for example "http://collector:4318"). An http scheme disables
// TLS. No connection is made until the first export.
func NewOTLPExporter(ctx context.Context, endpointURL string) (sdktrace.SpanExporter, error) {
	return otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpointURL))
}
