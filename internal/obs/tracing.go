package obs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ServiceName tags logs and spans.
const ServiceName = "staffly"

// SetupTracing installs a global tracer provider. endpoint selects an
// OTLP/HTTP collector (host:port, scheme optional); otherwise stdout enables
// pretty-printed spans. With neither, the no-op provider stays in place.
// The returned func flushes and stops the provider.
func SetupTracing(ctx context.Context, endpoint string, stdout bool) (func(context.Context) error, error) {
	exp, err := newSpanExporter(ctx, endpoint, stdout, os.Stdout)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		slog.Debug("tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

func newSpanExporter(ctx context.Context, endpoint string, stdout bool, w io.Writer) (sdktrace.SpanExporter, error) {
	switch {
	case endpoint != "":
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(trimScheme(endpoint))}
		if !strings.HasPrefix(endpoint, "https://") {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exp, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		slog.Info("tracing to otlp collector", "endpoint", endpoint)
		return exp, nil
	case stdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		return exp, nil
	default:
		return nil, nil
	}
}

func trimScheme(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return strings.TrimPrefix(endpoint, "https://")
}
