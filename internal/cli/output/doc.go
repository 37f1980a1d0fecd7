// Package output provides output formatting for respkv-cli.
//
//   - formatter.go: Formatter interface and factory
//   - raw.go: redis-cli style rendering of replies
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//
// JSON and YAML render replies through ToData, so scripts get plain
// strings, numbers, lists and nulls.
package output
