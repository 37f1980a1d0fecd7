// Package command provides CLI command definitions for respkv-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, mode detection
//   - kv.go: get, set, delete, flush, mget, mset and raw do
//   - bench.go: Concurrent load generator
//   - health.go: Admin endpoint health check
//   - interactive.go: REPL mode
//
// Running respkv-cli with no command starts the REPL.
package command
