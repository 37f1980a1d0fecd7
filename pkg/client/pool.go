package client

import (
	"context"
	"errors"

	pool "github.com/jolestar/go-commons-pool/v2"
)

// PoolConfig sizes a Pool. Zero fields take the library defaults.
type PoolConfig struct {
	MaxTotal int
	MaxIdle  int
}

// Pool is a bounded set of clients to one server.
type Pool struct {
	pool *pool.ObjectPool
}

// NewPool creates a pool dialing addr on demand.
func NewPool(ctx context.Context, addr string, cfg PoolConfig, opts ...Option) *Pool {
	pc := pool.NewDefaultPoolConfig()
	if cfg.MaxTotal > 0 {
		pc.MaxTotal = cfg.MaxTotal
	}
	if cfg.MaxIdle > 0 {
		pc.MaxIdle = cfg.MaxIdle
	}
	pc.TestOnBorrow = true
	pc.TestOnReturn = true

	return &Pool{
		pool: pool.NewObjectPool(ctx, &connectionFactory{addr: addr, opts: opts}, pc),
	}
}

// Get borrows a client. Return it with Put.
func (p *Pool) Get(ctx context.Context) (*Client, error) {
	obj, err := p.pool.BorrowObject(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*Client)
	if !ok {
		return nil, errors.New("client: type mismatch")
	}
	return c, nil
}

// Put returns c to the pool, dropping it when the connection is broken.
func (p *Pool) Put(ctx context.Context, c *Client) error {
	if c.Broken() {
		return p.pool.InvalidateObject(ctx, c)
	}
	return p.pool.ReturnObject(ctx, c)
}

// With borrows a client for the duration of fn.
func (p *Pool) With(ctx context.Context, fn func(*Client) error) error {
	c, err := p.Get(ctx)
	if err != nil {
		return err
	}
	fnErr := fn(c)
	return errors.Join(fnErr, p.Put(ctx, c))
}

// Close closes the pool and every idle client.
func (p *Pool) Close(ctx context.Context) {
	p.pool.Close(ctx)
}

type connectionFactory struct {
	addr string
	opts []Option
}

func (f *connectionFactory) MakeObject(ctx context.Context) (*pool.PooledObject, error) {
	c, err := Dial(ctx, f.addr, f.opts...)
	if err != nil {
		return nil, err
	}
	return pool.NewPooledObject(c), nil
}

func (f *connectionFactory) DestroyObject(ctx context.Context, object *pool.PooledObject) error {
	c, ok := object.Object.(*Client)
	if !ok {
		return errors.New("client: type mismatch")
	}
	return c.Close()
}

func (f *connectionFactory) ValidateObject(ctx context.Context, object *pool.PooledObject) bool {
	c, ok := object.Object.(*Client)
	return ok && !c.Broken()
}

func (f *connectionFactory) ActivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}

func (f *connectionFactory) PassivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}
