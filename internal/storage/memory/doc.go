// Package memory provides the in-memory key-value store.
//
// Keys are spread across the shards of a cmap.Map so that operations on
// unrelated keys do not contend. The map is created once and cleared in
// place by Flush.
//
// Thread Safety:
//
// All operations are thread-safe. Flush locks every shard at once, so no
// reader observes a partially flushed store.
package memory
