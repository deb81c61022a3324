package telemetry

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const instrumentationName = "zerovicio"

// Logger and Tracer are safe to use before Init: they start as no-ops.
var (
	Logger      = zap.NewNop()
	Tracer      = otel.Tracer(instrumentationName)
	ServiceName string
)

// Init configures the JSON logger and, when an OTLP endpoint is configured,
// the trace exporter.
func Init(serviceName string) error {
	ServiceName = serviceName

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	Logger = logger.With(zap.String("service", serviceName))

	endpoint := os.Getenv("OTEL_EXPORTER_ENDPOINT")
	if endpoint == "" {
		endpoint = os.Getenv("JAEGER_ENDPOINT")
	}
	if endpoint == "" {
		Logger.Info("[telemetry] tracing exporter disabled")
		return nil
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String("1.0.0"),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	Tracer = otel.Tracer(instrumentationName)

	Logger.Info("[telemetry] initialized", zap.String("otlp_endpoint", endpoint))
	return nil
}

// Shutdown flushes pending spans and log entries.
func Shutdown(ctx context.Context) error {
	if tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); ok {
		if err := tp.Shutdown(ctx); err != nil {
			return err
		}
	}
	_ = Logger.Sync()
	return nil
}

// TracingMiddleware starts a span per request and logs the outcome.
func TracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := Tracer.Start(ctx, fmt.Sprintf("%s %s", c.Request.Method, c.FullPath()))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)

		spanCtx := span.SpanContext()
		if spanCtx.IsValid() {
			c.Header("X-Trace-ID", spanCtx.TraceID().String())
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		span.SetAttributes(
			semconv.HTTPMethodKey.String(c.Request.Method),
			semconv.HTTPRouteKey.String(c.FullPath()),
			semconv.HTTPStatusCodeKey.Int(c.Writer.Status()),
			attribute.String("http.client_ip", c.ClientIP()),
		)

		Logger.Info("[http] request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// StartSpan is a small helper so callers do not import otel directly.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
