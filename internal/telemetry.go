package internal

import (
	"context"
	"sync"
)

// Telemetry hook layer for the query executor. Callers may register a real
// metrics emitter (or a test stub) via RegisterTelemetryEmitter; the default
// emitter discards everything.

type telemetryEmitter func(ctx context.Context, name string, labels map[string]string, value any)

var (
	teleMu   sync.Mutex
	teleImpl telemetryEmitter = func(ctx context.Context, name string, labels map[string]string, value any) {
		// noop by default
	}
)

// RegisterTelemetryEmitter registers a custom emitter function. nil restores the no-op.
func RegisterTelemetryEmitter(fn telemetryEmitter) {
	teleMu.Lock()
	defer teleMu.Unlock()
	if fn == nil {
		teleImpl = func(ctx context.Context, name string, labels map[string]string, value any) {}
		return
	}
	teleImpl = fn
}

func emitter() telemetryEmitter {
	teleMu.Lock()
	defer teleMu.Unlock()
	return teleImpl
}

// EmitLatency records a latency measure (milliseconds) for a named stage.
// name: "xrose_query_latency_ms" with label {"stage": "<prepare|execute|backup|restore>"}
func EmitLatency(ctx context.Context, stage string, ms int64) {
	emitter()(ctx, "xrose_query_latency_ms", map[string]string{"stage": stage}, ms)
}

// EmitRowCount records the rows a statement produced.
// name: "xrose_query_row_count" with label {"statement": "<select|insert|...>"}
func EmitRowCount(ctx context.Context, statement string, rows int64) {
	emitter()(ctx, "xrose_query_row_count", map[string]string{"statement": statement}, rows)
}

// EmitSubqueryCount records how many bind-and-step cycles one prepared statement ran.
// name: "xrose_query_subquery_count" with label {"statement": "<select|insert|...>"}
func EmitSubqueryCount(ctx context.Context, statement string, n int64) {
	emitter()(ctx, "xrose_query_subquery_count", map[string]string{"statement": statement}, n)
}

// EmitError counts failed executions by error code.
// name: "xrose_query_errors" with label {"code": "<SQL_ERROR|...>"}
func EmitError(ctx context.Context, code string) {
	emitter()(ctx, "xrose_query_errors", map[string]string{"code": code}, int64(1))
}
