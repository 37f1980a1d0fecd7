// Package storage defines the key-value contract served over the wire.
//
// Implementations live in subpackages; memory is the only one today.
// Keys are arbitrary byte strings, values are opaque byte slices, and every
// operation takes effect immediately with no expiry.
package storage
