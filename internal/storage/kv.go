package storage

// KV is one key-value pair of a multi-key write.
type KV struct {
	Key   []byte
	Value []byte
}

// Store is the set of operations the command layer needs.
//
// All methods are safe for concurrent use. Each single-key operation and
// Flush are atomic; MGet and MSet are applied key by key.
type Store interface {
	// Get returns the value stored at key.
	Get(key []byte) ([]byte, bool)

	// Set stores value at key and reports whether the key already existed.
	Set(key, value []byte) bool

	// Delete removes key and reports whether it was present.
	Delete(key []byte) bool

	// Flush removes every key and returns how many were removed.
	Flush() int

	// MGet returns one slot per key in request order; absent keys are nil.
	MGet(keys ...[]byte) [][]byte

	// MSet stores every pair in order and returns the number of pairs written.
	MSet(pairs []KV) int

	// Len returns the number of stored keys.
	Len() int
}
