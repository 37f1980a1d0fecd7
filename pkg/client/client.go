package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/yndnr/respkv/internal/resp"
)

// ErrClosed is returned by calls on a closed client.
var ErrClosed = errors.New("client: closed")

// Option configures a Client.
type Option func(*options)

type options struct {
	dialTimeout time.Duration
	timeout     time.Duration
}

// WithDialTimeout bounds connection setup when ctx has no deadline.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) { o.dialTimeout = d }
}

// WithTimeout bounds each request when ctx has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// Client is a single connection to a respkv server.
type Client struct {
	addr string
	opts options

	mu     sync.Mutex
	conn   net.Conn
	r      *resp.Reader
	w      *resp.Writer
	broken bool
	closed bool
}

// Dial connects to addr.
func Dial(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	o := options{dialTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	d := net.Dialer{}
	if _, ok := ctx.Deadline(); !ok && o.dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.dialTimeout)
		defer cancel()
	}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	return &Client{
		addr: addr,
		opts: o,
		conn: conn,
		r:    resp.NewReader(conn),
		w:    resp.NewWriter(conn),
	}, nil
}

// Addr returns the server address.
func (c *Client) Addr() string { return c.addr }

// Do sends one command and returns the reply. An error reply from the server
// is returned as a resp.Error value with a nil error.
func (c *Client) Do(ctx context.Context, args ...[]byte) (resp.Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.broken {
		return nil, errors.New("client: connection is broken")
	}

	if err := c.setDeadline(ctx); err != nil {
		return nil, err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := c.w.WriteValue(resp.CommandValue(args...)); err != nil {
		return nil, c.fail(ctx, err)
	}
	if err := c.w.Flush(); err != nil {
		return nil, c.fail(ctx, err)
	}
	v, err := c.r.ReadValue()
	if err != nil {
		return nil, c.fail(ctx, err)
	}
	return v, nil
}

// DoStrings is Do with string arguments.
func (c *Client) DoStrings(ctx context.Context, args ...string) (resp.Value, error) {
	b := make([][]byte, len(args))
	for i, a := range args {
		b[i] = []byte(a)
	}
	return c.Do(ctx, b...)
}

// Broken reports whether an I/O or protocol failure left the connection unusable.
func (c *Client) Broken() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.broken || c.closed
}

// Close closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *Client) setDeadline(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var deadline time.Time
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	} else if c.opts.timeout > 0 {
		deadline = time.Now().Add(c.opts.timeout)
	}
	return c.conn.SetDeadline(deadline)
}

// fail marks the connection broken. A cancelled ctx takes precedence over
// the deadline error it caused.
func (c *Client) fail(ctx context.Context, err error) error {
	c.broken = true
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
