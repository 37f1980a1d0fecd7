package memory

import (
	"github.com/yndnr/respkv/internal/storage"
	"github.com/yndnr/respkv/pkg/cmap"
)

// Store is an in-memory implementation of storage.Store.
type Store struct {
	data *cmap.Map[[]byte]
}

var _ storage.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*options)

type options struct {
	shardCount int
}

// WithShardCount sets the number of map shards. It must be a power of two.
func WithShardCount(n int) Option {
	return func(o *options) {
		o.shardCount = n
	}
}

// New creates a new in-memory store.
func New(opts ...Option) *Store {
	o := options{shardCount: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{data: cmap.NewWithShards[[]byte](o.shardCount)}
}

// Get returns the value stored at key. The returned slice must not be modified.
func (s *Store) Get(key []byte) ([]byte, bool) {
	return s.data.Get(string(key))
}

// Set stores a copy of value at key.
func (s *Store) Set(key, value []byte) bool {
	return s.data.Set(string(key), clone(value))
}

// Delete removes key.
func (s *Store) Delete(key []byte) bool {
	return s.data.Delete(string(key))
}

// Flush removes every key in one atomic step.
func (s *Store) Flush() int {
	return s.data.Clear()
}

// MGet looks up every key in order.
func (s *Store) MGet(keys ...[]byte) [][]byte {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if v, ok := s.data.Get(string(k)); ok {
			out[i] = v
		}
	}
	return out
}

// MSet stores every pair in order. A key repeated within pairs ends with its last value.
func (s *Store) MSet(pairs []storage.KV) int {
	for _, p := range pairs {
		s.data.Set(string(p.Key), clone(p.Value))
	}
	return len(pairs)
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return s.data.Count()
}

// clone copies b; stored values are never nil so an empty value stays distinct from absent.
func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
