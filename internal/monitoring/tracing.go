package monitoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ZanzyTHEbar/layoff-o-meter/internal/config"
	apperrors "github.com/ZanzyTHEbar/layoff-o-meter/internal/errors"
)

const (
	instrumentationName = "github.com/ZanzyTHEbar/layoff-o-meter"
	defaultOTLPEndpoint = "localhost:4317"
	traceIDHeader       = "X-Trace-ID"
)

// Tracer wraps an OpenTelemetry tracer together with the provider shutdown
type Tracer struct {
	tracer   trace.Tracer
	shutdown func(context.Context) error
}

// NewTracer creates a tracer on the given provider. Shutdown is a no-op.
func NewTracer(provider trace.TracerProvider) *Tracer {
	return &Tracer{
		tracer:   provider.Tracer(instrumentationName),
		shutdown: func(context.Context) error { return nil },
	}
}

// InitTracer builds the tracer from configuration. When tracing is disabled
// it returns a tracer that records nothing. Exporter failures degrade to
// the no-op tracer with a warning.
func InitTracer(ctx context.Context, cfg config.TracingConfig) *Tracer {
	if !cfg.Enabled {
		return NewTracer(noop.NewTracerProvider())
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultOTLPEndpoint
	}

	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		slog.Warn("otel exporter init failed", "error", err)
		return NewTracer(noop.NewTracerProvider())
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	))
	if err != nil {
		slog.Warn("otel resource merge failed", "error", err)
		res = resource.Default()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.Info("otel tracer initialized", "endpoint", endpoint, "sample_ratio", cfg.SampleRatio)

	t := NewTracer(tp)
	t.shutdown = tp.Shutdown
	return t
}

// Start opens a child span of whatever span ctx carries
func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Flush shuts the provider down, exporting buffered spans
func (t *Tracer) Flush(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := t.shutdown(ctx); err != nil {
		slog.Warn("otel tracer shutdown failed", "error", err)
	}
}

// TracingMiddleware creates Gin middleware that opens a server span per
// request and continues any inbound W3C trace context.
func TracingMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx, span := tracer.tracer.Start(ctx, fmt.Sprintf("%s %s", c.Request.Method, route),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("client.address", c.ClientIP()),
				attribute.String("user_agent.original", c.GetHeader("User-Agent")),
			),
		)
		defer span.End()

		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Header(traceIDHeader, sc.TraceID().String())
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if id := c.GetString(apperrors.RequestIDKey); id != "" {
			span.SetAttributes(attribute.String("request.id", id))
		}

		if len(c.Errors) > 0 {
			span.RecordError(c.Errors.Last().Err)
		}
		if status >= 500 {
			span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
		}
	}
}

// TraceFunction runs fn inside a span, recording any returned error
func TraceFunction(ctx context.Context, tracer *Tracer, operation string, fn func(context.Context) error) error {
	ctx, span := tracer.Start(ctx, operation)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
