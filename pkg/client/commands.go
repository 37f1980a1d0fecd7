package client

import (
	"context"
	"fmt"

	"github.com/yndnr/respkv/internal/resp"
)

// Get returns the value of key. ok is false when the key does not exist.
func (c *Client) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	v, err := c.Do(ctx, []byte("GET"), []byte(key))
	if err != nil {
		return nil, false, err
	}
	switch v := v.(type) {
	case resp.BulkString:
		if v.Null {
			return nil, false, nil
		}
		return v.Bytes, true, nil
	case resp.Error:
		return nil, false, v
	default:
		return nil, false, unexpectedReply("GET", v)
	}
}

// Set stores value under key. A nil value stores the empty string.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	_, err := c.integer(ctx, "SET", []byte(key), nonNil(value))
	return err
}

// Delete removes key and reports whether it existed.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	n, err := c.integer(ctx, "DELETE", []byte(key))
	return n == 1, err
}

// Flush removes every key and returns how many were removed.
func (c *Client) Flush(ctx context.Context) (int64, error) {
	return c.integer(ctx, "FLUSH")
}

// MGet returns the values of keys in order; missing keys yield nil.
func (c *Client) MGet(ctx context.Context, keys ...string) ([][]byte, error) {
	args := make([][]byte, 0, len(keys)+1)
	args = append(args, []byte("MGET"))
	for _, k := range keys {
		args = append(args, []byte(k))
	}

	v, err := c.Do(ctx, args...)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case resp.Array:
		out := make([][]byte, len(v.Elems))
		for i, e := range v.Elems {
			b, ok := e.(resp.BulkString)
			if !ok {
				return nil, unexpectedReply("MGET", e)
			}
			if !b.Null {
				out[i] = b.Bytes
			}
		}
		return out, nil
	case resp.Error:
		return nil, v
	default:
		return nil, unexpectedReply("MGET", v)
	}
}

// Pair is one key-value pair for MSet.
type Pair struct {
	Key   string
	Value []byte
}

// MSet stores all pairs and returns how many were written.
func (c *Client) MSet(ctx context.Context, pairs ...Pair) (int64, error) {
	args := make([][]byte, 0, 2*len(pairs))
	for _, p := range pairs {
		args = append(args, []byte(p.Key), nonNil(p.Value))
	}
	return c.integer(ctx, "MSET", args...)
}

func (c *Client) integer(ctx context.Context, name string, operands ...[]byte) (int64, error) {
	args := make([][]byte, 0, len(operands)+1)
	args = append(args, []byte(name))
	args = append(args, operands...)

	v, err := c.Do(ctx, args...)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case resp.Integer:
		return v.Int, nil
	case resp.Error:
		return 0, v
	default:
		return 0, unexpectedReply(name, v)
	}
}

// nonNil keeps nil values off the wire, where they would encode as a null bulk.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

func unexpectedReply(cmd string, v resp.Value) error {
	return fmt.Errorf("client: unexpected %s reply to %s", v.Kind(), cmd)
}
