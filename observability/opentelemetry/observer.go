package opentelemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"channelcall"
)

const instrumentationName = "channelcall/observability/opentelemetry"

var _ channelcall.Observer = (*Observer)(nil)

// Observer opens one client span per invocation.
type Observer struct {
	tracer trace.Tracer
}

// NewObserver uses the global tracer provider when tracer is nil.
func NewObserver(tracer trace.Tracer) *Observer {
	if tracer == nil {
		tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	return &Observer{tracer: tracer}
}

func (o *Observer) Begin(ctx context.Context, address string) (context.Context, func(channelcall.Report)) {
	ctx, span := o.tracer.Start(ctx, "channelcall.Invoke",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("net.peer.name", address)))
	return ctx, func(r channelcall.Report) {
		span.SetAttributes(
			attribute.Int("channelcall.operations", r.Executed),
			attribute.String("channelcall.state", r.State.String()),
			attribute.String("channelcall.disposition", r.Disposition.String()),
		)
		if r.Suppressed != nil {
			span.AddEvent("close failure suppressed",
				trace.WithAttributes(attribute.String("error", r.Suppressed.Error())))
		}
		if r.Err != nil {
			span.RecordError(r.Err)
			span.SetStatus(codes.Error, "invoke failed")
		} else {
			span.SetStatus(codes.Ok, "OK")
		}
		span.End()
	}
}
