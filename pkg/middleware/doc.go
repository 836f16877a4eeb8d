// Package middleware provides the observability layer of the recipes
// server: Prometheus metrics and OpenTelemetry tracing for HTTP requests,
// container dispatches and search API calls.
//
// # Prometheus Metrics
//
//	m := middleware.NewMetrics(middleware.WithNamespace("recipes"))
//	r.Use(m.HTTP)
//	r.Handle("/metrics", m.Handler())
//
//	c := recipes.New(recipes.WithHook(m.DispatchHook()))
//
// Metrics collected:
//   - recipes_http_requests_total: requests by route, method and status code
//   - recipes_http_request_duration_seconds: request latency by route
//   - recipes_dispatches_total: dispatched actions by slice, kind and whether
//     the slice changed
//   - recipes_url_syncs_total: address bar writes by mode
//   - recipes_active_sessions: open WebSocket sessions
//   - recipes_sessions_total: sessions ever opened
//   - recipes_fetches_total: search API calls by op and outcome
//   - recipes_fetch_duration_seconds: search API latency by op
//   - recipes_websocket_errors_total: WebSocket errors by type
//
// # OpenTelemetry
//
// Tracing wraps an http.Handler in a server span per request. TraceDispatch
// returns a container hook that records one span per dispatched action.
// Both use the global tracer provider unless WithTracerProvider is given.
//
//	r.Use(middleware.Tracing(middleware.WithTracerName("recipes")))
package middleware
