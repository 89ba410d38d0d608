// Package trace is the logging layer of the risp front end.
//
// Events are spans (begin/end pairs) or points, tagged with a Scope that says
// how coarse they are. The active Level decides which scopes are written.
//
// # Usage
//
//	risp parse --trace=- --trace-level=phase core.risp
//
// # Tracers
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write as text or NDJSON
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelPhase: driver and pass boundaries (scan, parse)
//   - LevelDetail: per-module events
//   - LevelDebug: everything, including every top-level form and zone growth
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
