// Package metric provides Prometheus metrics for respkv.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: registry, server metrics and the HTTP handler
//   - collector.go: collector reporting the number of stored keys
//
// Metrics include:
//
//   - Accepted and active connections
//   - Commands by name and result, with latency histograms
//   - Decode errors that closed a connection
//   - Stored key count
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
