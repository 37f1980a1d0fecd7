// Package main provides the entry point for respkv-cli.
//
// The CLI tool provides command-line access to a respkv server:
//
//   - Key commands (get, set, delete, flush, mget, mset)
//   - Raw commands (do)
//   - Load generation (bench)
//   - Admin health check (health)
//
// Usage:
//
//	respkv-cli [flags] [command]
//	respkv-cli -o json mget a b c
//	respkv-cli bench -c 16 -n 100000
//
// Without a command the CLI starts interactive REPL mode.
package main
