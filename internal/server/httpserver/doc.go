// Package httpserver provides the admin HTTP server for respkv.
//
// The admin endpoint is optional and separate from the RESP port:
//
//   - GET /healthz: JSON status with build info and key count
//   - GET /metrics: Prometheus exposition
//
// It uses the standard library net/http.
package httpserver
