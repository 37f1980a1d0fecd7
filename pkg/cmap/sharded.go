// Package cmap provides a concurrent map keyed by string.
package cmap

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the shard count used by New.
const DefaultShardCount = 16

// Map is a concurrent-safe sharded map.
type Map[V any] struct {
	shards    []*shard[V]
	shardMask uint64
}

type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// New creates a new sharded map with the default shard count.
func New[V any]() *Map[V] {
	return NewWithShards[V](DefaultShardCount)
}

// NewWithShards creates a new sharded map with the specified shard count.
// shardCount must be a power of 2; other values fall back to DefaultShardCount.
func NewWithShards[V any](shardCount int) *Map[V] {
	if !ValidShardCount(shardCount) {
		shardCount = DefaultShardCount
	}

	m := &Map[V]{
		shards:    make([]*shard[V], shardCount),
		shardMask: uint64(shardCount - 1),
	}
	for i := 0; i < shardCount; i++ {
		m.shards[i] = &shard[V]{items: make(map[string]V)}
	}
	return m
}

// ValidShardCount reports whether n is a usable shard count.
func ValidShardCount(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func (m *Map[V]) getShard(key string) *shard[V] {
	return m.shards[murmur3.Sum64([]byte(key))&m.shardMask]
}

// Get retrieves a value by key.
func (m *Map[V]) Get(key string) (V, bool) {
	shard := m.getShard(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	val, ok := shard.items[key]
	return val, ok
}

// Set stores a key-value pair and reports whether the key already existed.
func (m *Map[V]) Set(key string, value V) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	_, existed := shard.items[key]
	shard.items[key] = value
	return existed
}

// Delete removes a key and reports whether it was present.
func (m *Map[V]) Delete(key string) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	_, ok := shard.items[key]
	if ok {
		delete(shard.items, key)
	}
	return ok
}

// Count returns the total number of items.
// Shards are read one after another, so the result is approximate under concurrent writes.
func (m *Map[V]) Count() int {
	count := 0
	for _, shard := range m.shards {
		shard.mu.RLock()
		count += len(shard.items)
		shard.mu.RUnlock()
	}
	return count
}

// Clear removes all items and returns how many were removed.
//
// All shard locks are taken in index order before anything is removed, so no
// concurrent operation can observe a partially cleared map.
func (m *Map[V]) Clear() int {
	for _, shard := range m.shards {
		shard.mu.Lock()
	}
	removed := 0
	for _, shard := range m.shards {
		removed += len(shard.items)
		clear(shard.items)
	}
	for _, shard := range m.shards {
		shard.mu.Unlock()
	}
	return removed
}
