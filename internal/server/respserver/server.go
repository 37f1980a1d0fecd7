package respserver

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/semaphore"

	"github.com/yndnr/respkv/internal/resp"
	"github.com/yndnr/respkv/internal/storage"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

// ErrServerClosed is returned by Serve after Shutdown.
var ErrServerClosed = errors.New("respserver: server closed")

// Accept retry backoff bounds.
const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// Config holds the RESP server configuration.
type Config struct {
	// Addr is the TCP listen address used by ListenAndServe.
	Addr string
	// MaxClients caps concurrent connections (0 = unlimited).
	// When the cap is reached new connections wait in the listen backlog.
	MaxClients int
	// IdleTimeout closes a connection that sends nothing between requests (0 = disabled).
	IdleTimeout time.Duration
	// ReadTimeout bounds reading one request once it has started (0 = disabled).
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one reply (0 = disabled).
	WriteTimeout time.Duration
	// RateLimit is the maximum number of commands per second per connection (0 = disabled).
	RateLimit int
	// MaxBulkLen and MaxArrayLen override the codec limits when positive.
	MaxBulkLen  int
	MaxArrayLen int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        "127.0.0.1:31338",
		MaxClients:  64,
		MaxBulkLen:  resp.DefaultMaxBulkLen,
		MaxArrayLen: resp.DefaultMaxArrayLen,
	}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// Server is the RESP protocol server.
type Server struct {
	cfg        Config
	dispatcher *Dispatcher
	logger     logger.Logger
	metrics    *metric.Registry
	sem        *semaphore.Weighted
	conns      *xsync.MapOf[string, *conn]

	mu      sync.Mutex
	ln      net.Listener
	closing atomic.Bool
	wg      sync.WaitGroup
}

// New creates a server over store.
func New(cfg Config, store storage.Store, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger.Default(),
		conns:  xsync.NewMapOf[string, *conn](),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.MaxClients > 0 {
		s.sem = semaphore.NewWeighted(int64(cfg.MaxClients))
	}
	s.dispatcher = NewDispatcher(store, s.logger, s.metrics)
	return s
}

// ListenAndServe listens on cfg.Addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, ln is closed or Shutdown is called.
// It returns ErrServerClosed after Shutdown and nil otherwise.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.closing.Load() {
		s.mu.Unlock()
		_ = ln.Close()
		return ErrServerClosed
	}
	s.ln = ln
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-stop:
		}
	}()

	s.logger.Info("resp server listening",
		"address", ln.Addr().String(),
		"max_clients", s.cfg.MaxClients,
		"commands", s.dispatcher.Commands())

	backoff := time.Duration(0)
	for {
		if s.sem != nil {
			if err := s.sem.Acquire(ctx, 1); err != nil {
				return s.closedErr()
			}
		}

		nc, err := ln.Accept()
		if err != nil {
			s.release()
			if s.closing.Load() || ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return s.closedErr()
			}
			if backoff == 0 {
				backoff = minAcceptBackoff
			} else {
				backoff = min(backoff*2, maxAcceptBackoff)
			}
			s.logger.Warn("accept failed; retrying", "error", err, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return s.closedErr()
			}
			continue
		}
		backoff = 0

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.release()
			s.serveConn(ctx, nc)
		}()
	}
}

func (s *Server) closedErr() error {
	if s.closing.Load() {
		return ErrServerClosed
	}
	return nil
}

func (s *Server) release() {
	if s.sem != nil {
		s.sem.Release(1)
	}
}

// Addr returns the listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ActiveConns returns the number of open connections.
func (s *Server) ActiveConns() int {
	return s.conns.Size()
}

// Shutdown stops accepting, closes every open connection and waits for
// their loops to finish or for ctx to be done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing.Store(true)
	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}
	s.mu.Unlock()

	s.conns.Range(func(_ string, c *conn) bool {
		_ = c.Close()
		return true
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return firstErr
}
