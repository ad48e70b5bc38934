// Package middleware provides instrumentation for the work the host does:
// rendering a page and dispatching an activation to it.
//
// Each unit of work is described by an Op. Middlewares wrap the work the
// same way HTTP middlewares wrap a handler:
//
//	err := middleware.Run(op, func() error {
//	    return render(op)
//	}, middleware.OpenTelemetry(), metrics)
//
// # OpenTelemetry
//
// OpenTelemetry starts a span per Op carrying the page, the hydration ID and
// the event. The span context replaces op.Ctx for the rest of the chain, so
// anything called with op.Ctx inherits the trace. The tracer comes from the
// global provider; configure one in main() to export spans.
//
// # Prometheus
//
// Prometheus registers the dailycontents metrics and returns a *Metrics that
// is both a Middleware and a recorder for connection level events:
//   - dailycontents_ops_total: Ops by kind, page and status
//   - dailycontents_op_duration_seconds: Op duration histogram
//   - dailycontents_activations_total: Activations by page and outcome
//   - dailycontents_live_connections: Open live connections
//   - dailycontents_websocket_errors_total: WebSocket errors by type
//
// Expose them with promhttp:
//
//	reg := prometheus.NewRegistry()
//	metrics := middleware.Prometheus(middleware.WithRegistry(reg))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package middleware
