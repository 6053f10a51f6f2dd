// Package trace records what a run of esdata spends its time on.
//
// A run opens a ScopeRun span, each batch stage (list, load, parse,
// report) a ScopeStage span, and each parsed source a ScopeSource span.
// Events go to a writer as text or NDJSON, to an in-memory ring for
// post-mortem dumps, or to both.
//
//	esdata diag --trace=- --trace-level=source data/
//
// The tracer and the current span travel in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopeStage, "parse")
//	defer span.End("")
package trace
