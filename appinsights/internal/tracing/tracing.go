// Package tracing wraps a send attempt in a span, mirroring the shape of
// the teacher's engine/monitoring.OpenTelemetryTracer (StartBusinessOperation
// / RecordError / FinishBusinessOperation) but scoped to the one operation
// this SDK core ever traces: a submission attempt.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Tracer starts spans around submission attempts.
type Tracer interface {
	Start(ctx context.Context, name string, attrs map[string]any) (context.Context, Span)
}

// Span is the in-flight handle returned by Start.
type Span interface {
	SetAttributes(attrs map[string]any)
	RecordError(err error)
	Finish(success bool)
	End()
}

// New builds a Tracer backed by a real OpenTelemetry SDK TracerProvider,
// installed as the process-wide default via otel.SetTracerProvider, exactly
// as NewOpenTelemetryTracer does in the teacher.
func New(serviceName, environment string) Tracer {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.DeploymentEnvironmentKey.String(environment),
		)),
	)
	otel.SetTracerProvider(tp)
	return &otelTracer{tracer: otel.Tracer(serviceName)}
}

// Noop returns a Tracer whose spans record nothing, the default for
// Transmitters that are not given a tracer explicitly.
func Noop() Tracer { return noopTracer{} }

type otelTracer struct{ tracer oteltrace.Tracer }

func (t *otelTracer) Start(ctx context.Context, name string, attrs map[string]any) (context.Context, Span) {
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, fmt.Sprintf("%v", v)))
	}
	ctx, span := t.tracer.Start(ctx, name, oteltrace.WithAttributes(kv...))
	return ctx, &otelSpan{span: span}
}

type otelSpan struct{ span oteltrace.Span }

func (s *otelSpan) SetAttributes(attrs map[string]any) {
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, fmt.Sprintf("%v", v)))
	}
	s.span.SetAttributes(kv...)
}

func (s *otelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetAttributes(attribute.String("error.message", err.Error()))
}

func (s *otelSpan) Finish(success bool) {
	s.span.SetAttributes(attribute.Bool("operation.success", success))
	if success {
		s.span.SetStatus(codes.Ok, "send succeeded")
	} else {
		s.span.SetStatus(codes.Error, "send failed")
	}
}

func (s *otelSpan) End() { s.span.End() }

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ map[string]any) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) SetAttributes(map[string]any) {}
func (noopSpan) RecordError(error)             {}
func (noopSpan) Finish(bool)                   {}
func (noopSpan) End()                          {}
