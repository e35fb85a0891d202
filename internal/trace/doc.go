// Package trace records where the checker spends its time.
//
// Spans nest driver → pass → unit → node. A driver run opens one span per
// file, each file opens pass spans (lex, parse, sema) and the rewriter opens a
// unit span plus one node span per call it resolves.
//
// Enable tracing from the command line:
//
//	named check --trace=- --trace-level=detail src/
//
// Tracers:
//
//   - Nop: zero-overhead, used when tracing is off
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the last N events, dumped on failure
//   - MultiTracer: fan-out
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
