package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// OutcomeOK is the outcome recorded for a successful call.
const OutcomeOK = "ok"

// Instruments trace and count device calls.
type Instruments struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
}

// NewInstruments creates call instruments. Nil providers fall back to the
// global ones.
func NewInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*Instruments, error) {
	meter := Meter(mp)

	requests, err := meter.Int64Counter(MetricRequests,
		metric.WithDescription("Device API calls by method and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRequests, err)
	}

	duration, err := meter.Float64Histogram(MetricRequestDuration,
		metric.WithDescription("Duration of device API calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRequestDuration, err)
	}

	active, err := meter.Int64UpDownCounter(MetricRequestsActive,
		metric.WithDescription("Device API calls in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricRequestsActive, err)
	}

	return &Instruments{
		tracer:   Tracer(tp),
		requests: requests,
		duration: duration,
		active:   active,
	}, nil
}

// Call tracks one in-flight device call.
type Call struct {
	ctx    context.Context
	span   trace.Span
	inst   *Instruments
	method string
	start  time.Time
}

// Start opens a span for a call and marks it active.
func (i *Instruments) Start(ctx context.Context, method, endpoint, requestID string) (context.Context, *Call) {
	ctx, span := i.tracer.Start(ctx, SpanDeviceRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrHTTPMethod, method),
			attribute.String(AttrURL, endpoint),
			attribute.String(AttrRequestID, requestID),
		),
	)
	i.active.Add(ctx, 1, metric.WithAttributes(attribute.String("method", method)))

	return ctx, &Call{ctx: ctx, span: span, inst: i, method: method, start: time.Now()}
}

// End closes the span and records the call. statusCode is 0 when no
// response was received.
func (c *Call) End(statusCode int, outcome string, err error) time.Duration {
	elapsed := time.Since(c.start)

	if statusCode > 0 {
		c.span.SetAttributes(attribute.Int(AttrHTTPStatusCode, statusCode))
	}
	c.span.SetAttributes(attribute.String(AttrOutcome, outcome))
	if err != nil {
		c.span.RecordError(err)
		c.span.SetStatus(codes.Error, outcome)
	}
	c.span.End()

	methodAttr := attribute.String("method", c.method)
	c.inst.active.Add(c.ctx, -1, metric.WithAttributes(methodAttr))
	c.inst.requests.Add(c.ctx, 1, metric.WithAttributes(methodAttr, attribute.String("outcome", outcome)))
	c.inst.duration.Record(c.ctx, elapsed.Seconds(), metric.WithAttributes(methodAttr))

	return elapsed
}
