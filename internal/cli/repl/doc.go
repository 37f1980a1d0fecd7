// Package repl provides interactive mode for respkv-cli.
//
//   - repl.go: Main loop, built-in commands and reply printing
//   - args.go: Splitting input lines into command arguments
//   - completer.go: Command name completion used by help
//   - history.go: Command history persistence
//
// Arguments may be quoted the way redis-cli accepts them:
//
//	respkv> SET greeting "hello world\n"
//	respkv> GET 'it\'s'
package repl
