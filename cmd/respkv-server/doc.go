// Package main provides the entry point for respkv-server.
//
// The server provides:
//
//   - A RESP key-value endpoint (GET, SET, DELETE, FLUSH, MGET, MSET)
//   - An optional admin HTTP endpoint with /healthz and /metrics
//
// Usage:
//
//	respkv-server [flags]
//	respkv-server --config /path/to/config.yaml
//	RESPKV_SERVER__RESP__ADDR=:6380 respkv-server
//
// The server loads configuration, initializes infrastructure components,
// and starts all configured listeners. Changes to log.level in the
// configuration file apply without a restart.
package main
