// Package otel configures OpenTelemetry tracing and provides the helpers
// request handlers use to start spans.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"customerapi/pkg/logger"
)

// Config defines the tracing settings for the service.
type Config struct {
	ServiceName string
	Host        string
	Probability float64
}

// InitTracing configures the global tracer provider. Spans are exported to
// the OTLP gRPC collector at cfg.Host; with an empty Host no exporter is
// attached and spans stay in-process. The returned shutdown function flushes
// anything still queued.
func InitTracing(log *logger.Logger, cfg Config) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.Probability)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	}

	if cfg.Host != "" {
		exporter, err := otlptrace.New(context.Background(),
			otlptracegrpc.NewClient(
				otlptracegrpc.WithInsecure(),
				otlptracegrpc.WithEndpoint(cfg.Host),
			),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	} else {
		log.Info(context.Background(), "tracing export disabled", "reason", "no otel host configured")
	}

	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, tp.Shutdown, nil
}

type ctxKey int

const tracerKey ctxKey = 1

// InjectTracing stores the tracer in the context so handlers further down
// the chain can add spans.
func InjectTracing(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// AddSpan starts a span named name if the context carries a tracer. When no
// tracer was injected, the span already bound to the context is returned
// unchanged.
func AddSpan(ctx context.Context, name string, keyValues ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer, ok := ctx.Value(tracerKey).(trace.Tracer)
	if !ok || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	ctx, span := tracer.Start(ctx, name)
	span.SetAttributes(keyValues...)

	return ctx, span
}

// GetTraceID returns the trace id of the span bound to ctx, or the zero id
// when the context has no active span.
func GetTraceID(ctx context.Context) string {
	return trace.SpanFromContext(ctx).SpanContext().TraceID().String()
}
