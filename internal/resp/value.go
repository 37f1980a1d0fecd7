package resp

import (
	"bytes"
	"fmt"
)

// Kind identifies a value variant. Its numeric value is the wire type tag.
type Kind byte

const (
	KindSimpleString Kind = '+'
	KindError        Kind = '-'
	KindInteger      Kind = ':'
	KindBulkString   Kind = '$'
	KindArray        Kind = '*'
	KindDictionary   Kind = '%'
)

// String returns a human readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "simple string"
	case KindError:
		return "error"
	case KindInteger:
		return "integer"
	case KindBulkString:
		return "bulk string"
	case KindArray:
		return "array"
	case KindDictionary:
		return "dictionary"
	default:
		return fmt.Sprintf("kind(%q)", rune(k))
	}
}

// Value is a protocol value. The set of implementations is closed:
// SimpleString, Error, Integer, BulkString, Array and Dictionary.
type Value interface {
	Kind() Kind
	value()
}

// SimpleString is a single-line, non binary-safe string.
type SimpleString struct {
	Str string
}

// Error is a single-line error message.
type Error struct {
	Msg string
}

// Integer is a signed 64-bit integer.
type Integer struct {
	Int int64
}

// BulkString is a length-prefixed byte string, or the null bulk string when Null is set.
type BulkString struct {
	Bytes []byte
	Null  bool
}

// Array is an ordered sequence of values, or the null array when Null is set.
type Array struct {
	Elems []Value
	Null  bool
}

// Pair is one key/value entry of a Dictionary.
type Pair struct {
	Key Value
	Val Value
}

// Dictionary is an ordered sequence of key/value pairs. Arrival order is kept.
type Dictionary struct {
	Pairs []Pair
}

func (SimpleString) Kind() Kind { return KindSimpleString }
func (Error) Kind() Kind        { return KindError }
func (Integer) Kind() Kind      { return KindInteger }
func (BulkString) Kind() Kind   { return KindBulkString }
func (Array) Kind() Kind        { return KindArray }
func (Dictionary) Kind() Kind   { return KindDictionary }

func (SimpleString) value() {}
func (Error) value()        {}
func (Integer) value()      {}
func (BulkString) value()   {}
func (Array) value()        {}
func (Dictionary) value()   {}

// Error implements the error interface so an Error reply can be returned as a Go error.
func (e Error) Error() string { return e.Msg }

// NewSimpleString returns a simple string value.
func NewSimpleString(s string) SimpleString { return SimpleString{Str: s} }

// NewError returns an error value.
func NewError(msg string) Error { return Error{Msg: msg} }

// Errorf returns an error value with a formatted message.
func Errorf(format string, args ...any) Error {
	return Error{Msg: fmt.Sprintf(format, args...)}
}

// NewInteger returns an integer value.
func NewInteger(n int64) Integer { return Integer{Int: n} }

// NewBulk returns a bulk string holding b. A nil b is the null bulk string.
func NewBulk(b []byte) BulkString {
	if b == nil {
		return BulkString{Null: true}
	}
	return BulkString{Bytes: b}
}

// NewBulkString returns a bulk string holding s.
func NewBulkString(s string) BulkString { return BulkString{Bytes: []byte(s)} }

// NullBulk returns the null bulk string.
func NullBulk() BulkString { return BulkString{Null: true} }

// NewArray returns an array of the given values.
func NewArray(elems ...Value) Array {
	if elems == nil {
		elems = []Value{}
	}
	return Array{Elems: elems}
}

// NullArray returns the null array.
func NullArray() Array { return Array{Null: true} }

// NewBulkArray returns an array of bulk strings. Nil elements become null bulk strings.
func NewBulkArray(items [][]byte) Array {
	elems := make([]Value, len(items))
	for i, b := range items {
		elems[i] = NewBulk(b)
	}
	return Array{Elems: elems}
}

// NewDictionary returns a dictionary of the given pairs.
func NewDictionary(pairs ...Pair) Dictionary {
	if pairs == nil {
		pairs = []Pair{}
	}
	return Dictionary{Pairs: pairs}
}

// Equal reports whether a and b have the same variant and payload.
// A nil Value is treated as the null bulk string.
func Equal(a, b Value) bool {
	if a == nil {
		a = NullBulk()
	}
	if b == nil {
		b = NullBulk()
	}
	switch av := a.(type) {
	case SimpleString:
		bv, ok := b.(SimpleString)
		return ok && av.Str == bv.Str
	case Error:
		bv, ok := b.(Error)
		return ok && av.Msg == bv.Msg
	case Integer:
		bv, ok := b.(Integer)
		return ok && av.Int == bv.Int
	case BulkString:
		bv, ok := b.(BulkString)
		if !ok || av.Null != bv.Null {
			return false
		}
		return av.Null || bytes.Equal(av.Bytes, bv.Bytes)
	case Array:
		bv, ok := b.(Array)
		if !ok || av.Null != bv.Null || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case Dictionary:
		bv, ok := b.(Dictionary)
		if !ok || len(av.Pairs) != len(bv.Pairs) {
			return false
		}
		for i := range av.Pairs {
			if !Equal(av.Pairs[i].Key, bv.Pairs[i].Key) || !Equal(av.Pairs[i].Val, bv.Pairs[i].Val) {
				return false
			}
		}
		return true
	}
	return false
}
