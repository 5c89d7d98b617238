// Package telemetry wires OpenTelemetry tracing.
package telemetry

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/yigit/alumnihub"

// Config selects the exporter and sampling
type Config struct {
	Enabled     bool
	ServiceName string
	Environment string
	Endpoint    string // OTLP/HTTP host:port; empty exports to stdout
	Insecure    bool
	SampleRatio float64
}

// Init installs the global tracer provider and returns its shutdown func.
// When tracing is disabled the global no-op provider stays in place.
func Init(ctx context.Context, cfg Config, log zerolog.Logger) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return noop, nil
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "alumnihub"
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		log.Warn().Err(err).Msg("otel resource init failed (continuing)")
	}

	exporter, err := buildExporter(ctx, cfg)
	if err != nil {
		return noop, err
	}
	if cfg.Endpoint == "" {
		log.Warn().Msg("otel using stdout exporter (no OTLP endpoint configured)")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info().Str("service", serviceName).Str("endpoint", cfg.Endpoint).Msg("otel tracing initialized")
	return tp.Shutdown, nil
}

func buildExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	if cfg.Endpoint == "" {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

// Tracer returns the application tracer from the global provider
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
