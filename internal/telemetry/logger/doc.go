// Package logger provides structured logging for respkv.
//
// The Logger interface is implemented on zap:
//
//   - zap.go: encoder, sink and level wiring
//   - context.go: context-aware logging with connection ids
//   - payload.go: safe rendering of client bytes in log fields
//
// Features:
//
//   - JSON and console output formats
//   - Runtime log level changes through SetLevel
//   - Optional file output with size based rotation (lumberjack)
//   - Context propagation of the connection id
package logger
