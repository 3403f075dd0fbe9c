package bsh

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
)

// TracingTransport opens a client span around every dispatch through next
// and injects the trace context into the outgoing headers. A nil provider
// falls back to the global one.
func TracingTransport(next Transport, tp trace.TracerProvider) Transport {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	tracer := tp.Tracer(constants.TracerName)

	return TransportFunc(func(ctx context.Context, req *Request) (*RawResponse, error) {
		name := req.OperationName
		if name == "" {
			name = req.Method + " request"
		}

		ctx, span := tracer.Start(ctx, name,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.full", req.Path),
				attribute.String("bsh.operation", req.OperationName),
			),
		)
		defer span.End()

		out := req.Clone()
		otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(out.Headers))

		resp, err := next.Do(ctx, out)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return nil, err
		}

		if resp == nil {
			return nil, nil
		}

		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

		if resp.StatusCode >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		}

		return resp, nil
	})
}
