// Package server is the HTTP and WebSocket front of the recipes app.
//
// It serves the search pages, upgrades /_ws to a WebSocket and gives every
// connection a Session holding one recipes.Container.
//
// # Routes
//
//	GET /               home page
//	GET /recipes        search page; the query string is the search
//	GET /recipes/{id}   one recipe
//	GET /_ws            WebSocket endpoint
//	GET /healthz        liveness
//	GET /metrics        Prometheus metrics, when enabled
//
// # Session Lifecycle
//
// The page script connects to /_ws?u=<path and query of the page>. The
// session seeds its container from that address, sends a state frame and then
// runs three goroutines:
//   - readLoop: decodes client dispatches and posts them to the event loop
//   - eventLoop: runs every post as one tick, then writes the frames the tick
//     produced
//   - pingLoop: sends heartbeat pings
//
// # Ticks
//
// The event loop is the only goroutine that touches the container. A tick
// runs its function inside Container.Batch, so URL synchronization happens
// once per tick. After the tick the session writes a state frame if the
// snapshot changed, followed by any queued url frames.
//
// Search API calls run on their own goroutine and post their dispatches back
// to the loop through edamam.Load. Starting a search cancels the one in
// flight.
package server
