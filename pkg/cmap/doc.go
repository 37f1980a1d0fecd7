// Package cmap provides a concurrent map keyed by string.
//
// Keys are spread over a power-of-two number of shards by their murmur3
// hash. Each shard has its own RWMutex, so operations on different shards
// never contend.
//
// Usage:
//
//	m := cmap.New[[]byte]()
//	m.Set("key", []byte("v"))
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Get and Count take read locks, the
// mutating operations take write locks. Clear locks every shard at once and
// is therefore atomic with respect to all other operations.
package cmap
