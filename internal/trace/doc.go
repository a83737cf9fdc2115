// Package trace records what pinecheck spends its time on.
//
// Tracing is off unless requested on the command line:
//
//	pinecheck diag --trace=- --trace-level=phase scripts/
//
// # Tracers
//
//   - Nop: zero-cost tracer used when tracing is disabled
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory for post-mortem dumps
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// A level selects the scopes it lets through:
//
//   - LevelPhase: driver stages and analyzer passes
//   - LevelDetail: adds per-file events
//   - LevelDebug: everything, node-level events included
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "sema_collect", parentID)
//	defer span.End("")
package trace
