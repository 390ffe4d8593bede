// Package trace is fwlint's structured logging layer.
//
// It records what the checker did and when: loading files, parsing, running
// each rule and rendering output. Traces help explain slow directory runs and
// rules that misbehave on unusual input.
//
// # Usage
//
//	fwlint check --trace=- --trace-level=phase integration.js
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events for crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: crash dumps only
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including every rule evaluation
//
// # Scopes
//
//   - ScopeDriver: CLI commands and whole runs
//   - ScopePass: load, parse, rules, render
//   - ScopeFile: work on one file in directory mode
//   - ScopeRule: a single rule evaluation
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
