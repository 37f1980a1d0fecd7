package respserver

import (
	"context"
	"errors"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/respkv/internal/resp"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

const (
	limitExceededReply = "ERR protocol limit exceeded"
	rateLimitedReply   = "ERR rate limit exceeded"
)

// conn is a single client connection.
type conn struct {
	id      string
	netConn net.Conn
	r       *resp.Reader
	w       *resp.Writer
	limiter *rate.Limiter

	closed atomic.Bool
}

func (s *Server) newConn(nc net.Conn) *conn {
	return &conn{
		id:      ulid.Make().String(),
		netConn: nc,
		r: resp.NewReader(nc,
			resp.WithMaxBulkLen(s.cfg.MaxBulkLen),
			resp.WithMaxArrayLen(s.cfg.MaxArrayLen),
		),
		w:       resp.NewWriter(nc),
		limiter: newLimiter(s.cfg.RateLimit),
	}
}

// Close closes the connection once; later calls are no-ops.
func (c *conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

func (s *Server) serveConn(ctx context.Context, nc net.Conn) {
	c := s.newConn(nc)
	ctx = logger.WithConnID(ctx, c.id)
	log := s.logger.WithContext(ctx).With("remote", nc.RemoteAddr().String())

	s.conns.Store(c.id, c)
	s.metrics.ConnOpened()
	defer func() {
		s.conns.Delete(c.id)
		_ = c.Close()
		s.metrics.ConnClosed()
		log.Debug("connection closed")
	}()

	// Shutdown may have ranged over conns before this one was stored.
	if s.closing.Load() {
		return
	}
	log.Debug("connection accepted")

	for {
		args, err := s.readCommand(c)
		if err != nil {
			var ce *resp.CommandError
			switch {
			case errors.As(err, &ce):
				if !s.reply(c, resp.NewError(ce.Error())) {
					return
				}
				continue
			case resp.IsDecodeError(err):
				s.metrics.IncDecodeError()
				log.Warn("malformed request stream", "error", err)
				s.reply(c, decodeErrorReply(err))
				return
			default:
				logReadEnd(log, err)
				return
			}
		}

		var out resp.Value
		if c.limiter != nil && !c.limiter.Allow() {
			out = resp.NewError(rateLimitedReply)
		} else {
			out = s.dispatcher.Dispatch(ctx, args)
		}
		if !s.reply(c, out) {
			return
		}
	}
}

// readCommand applies the idle deadline while waiting for the first byte of a
// request and the read deadline while the rest of it arrives.
func (s *Server) readCommand(c *conn) ([][]byte, error) {
	if s.cfg.IdleTimeout > 0 {
		if err := c.netConn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
			return nil, err
		}
		if err := c.r.Peek(); err != nil {
			return nil, err
		}
	}
	switch {
	case s.cfg.ReadTimeout > 0:
		if err := c.netConn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
			return nil, err
		}
	case s.cfg.IdleTimeout > 0:
		if err := c.netConn.SetReadDeadline(time.Time{}); err != nil {
			return nil, err
		}
	}
	return c.r.ReadCommand()
}

// reply writes and flushes one value. It reports whether the connection is still usable.
func (s *Server) reply(c *conn, v resp.Value) bool {
	if s.cfg.WriteTimeout > 0 {
		if err := c.netConn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
			return false
		}
	}
	if err := c.w.WriteValue(v); err != nil {
		return false
	}
	return c.w.Flush() == nil
}

func decodeErrorReply(err error) resp.Error {
	var pe *resp.ProtocolError
	if errors.As(err, &pe) {
		return resp.NewError(pe.Msg)
	}
	return resp.NewError(limitExceededReply)
}

func logReadEnd(log logger.Logger, err error) {
	var netErr net.Error
	switch {
	case errors.Is(err, io.EOF):
	case errors.Is(err, io.ErrUnexpectedEOF):
		log.Debug("connection closed mid-request")
	case errors.As(err, &netErr) && netErr.Timeout():
		log.Debug("connection timed out")
	case errors.Is(err, net.ErrClosed):
	default:
		log.Debug("connection read error", "error", err)
	}
}
