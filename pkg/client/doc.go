// Package client is a Go client for respkv.
//
// A Client owns one connection and runs one request at a time. Pool keeps a
// set of clients for concurrent callers:
//
//	p := client.NewPool(ctx, "127.0.0.1:31338", client.PoolConfig{MaxTotal: 16})
//	defer p.Close(ctx)
//	err := p.With(ctx, func(c *client.Client) error {
//		_, err := c.Set(ctx, "k", []byte("v"))
//		return err
//	})
package client
