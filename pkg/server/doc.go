// Package server hosts the registered pages over HTTP.
//
// Every page is server-side rendered on GET. When the live channel is
// enabled, the page also loads a small client script that opens a WebSocket
// to LivePath and forwards activations of elements carrying a hydration ID:
//
//	client → server  {"hid":"h1","event":"click"}
//	server → client  {"hid":"h1","handled":true,"default":"","changed":true,"patches":1,"html":"..."}
//
// Each connection owns its own rendered tree. An activation runs the Go
// callback of the target element synchronously in the connection's read
// loop, re-renders the page and replies with the outcome. When the re-render
// changed anything, the reply carries the new body HTML, which the client
// swaps into the page root.
//
// # Routes
//
//	GET /<page>             server-rendered page from the registry
//	GET /healthz            liveness probe
//	GET /metrics            Prometheus metrics (when a gatherer is set)
//	GET /_live/client.js    live client script
//	GET /_live?page=<path>  WebSocket upgrade
//
// # Usage
//
//	srv := server.New(server.DefaultServerConfig(), pages.DefaultRegistry())
//	srv.Use(middleware.OpenTelemetry())
//	srv.SetMetrics(metrics, reg)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
