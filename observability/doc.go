// Package observability provides OpenTelemetry tracing and metrics for
// device calls.
//
// Every client call is wrapped in a span and counted. Instruments resolve
// against the global providers unless explicit ones are given, so an
// application that never configures OpenTelemetry pays only for no-op calls.
//
// Exporting to an OTLP collector:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("dashboard"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("dashboard"))
//	defer mp.Shutdown(ctx)
package observability
