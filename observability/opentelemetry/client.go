package opentelemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// ClientInterceptorBuilder builds the grpc interceptor handed to
// grpcchan.FactoryWithUnaryInterceptors.
type ClientInterceptorBuilder struct {
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// NewClientInterceptorBuilder falls back to the global tracer provider and
// propagator for nil arguments.
func NewClientInterceptorBuilder(tracer trace.Tracer, propagator propagation.TextMapPropagator) *ClientInterceptorBuilder {
	if tracer == nil {
		tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	if propagator == nil {
		propagator = otel.GetTextMapPropagator()
	}
	return &ClientInterceptorBuilder{tracer: tracer, propagator: propagator}
}

func (b *ClientInterceptorBuilder) BuildUnaryClientInterceptor() grpc.UnaryClientInterceptor {
	attrs := []attribute.KeyValue{
		attribute.Key("rpc.system").String("grpc"),
		attribute.Key("rpc.grpc.kind").String("unary"),
		attribute.Key("rpc.component").String("client"),
	}
	return func(ctx context.Context, method string, req, reply any,
		cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) (err error) {
		ctx, span := b.tracer.Start(ctx, method,
			trace.WithAttributes(attrs...),
			trace.WithSpanKind(trace.SpanKindClient))
		defer func() {
			if err != nil {
				span.SetStatus(codes.Error, "client failed")
				span.RecordError(err)
			} else {
				span.SetStatus(codes.Ok, "OK")
			}
			span.End()
		}()
		// carry the trace context to the server
		ctx = b.inject(ctx)
		err = invoker(ctx, method, req, reply, cc, opts...)
		return
	}
}

func (b *ClientInterceptorBuilder) inject(ctx context.Context) context.Context {
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{})
	} else {
		md = md.Copy()
	}
	b.propagator.Inject(ctx, metadataCarrier(md))
	return metadata.NewOutgoingContext(ctx, md)
}

// metadataCarrier adapts grpc metadata to a TextMapCarrier.
type metadataCarrier metadata.MD

func (c metadataCarrier) Get(key string) string {
	values := metadata.MD(c).Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (c metadataCarrier) Set(key, value string) {
	metadata.MD(c).Set(key, value)
}

func (c metadataCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	return keys
}
