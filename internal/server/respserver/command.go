package respserver

import (
	"context"
	"slices"
	"time"

	"github.com/yndnr/respkv/internal/resp"
	"github.com/yndnr/respkv/internal/storage"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

type handlerFunc func(ctx context.Context, args [][]byte) resp.Value

// command is one entry of the dispatch table.
//
// arity counts the command name: a positive value requires exactly that many
// arguments, a negative value -n requires at least n.
type command struct {
	name    string
	arity   int
	handler handlerFunc
}

func (c *command) arityOK(n int) bool {
	if c.arity >= 0 {
		return n == c.arity
	}
	return n >= -c.arity
}

// Dispatcher maps command lines to store operations.
type Dispatcher struct {
	store    storage.Store
	logger   logger.Logger
	metrics  *metric.Registry
	commands map[string]*command
}

// NewDispatcher builds the command table over store. log and m may be nil.
func NewDispatcher(store storage.Store, log logger.Logger, m *metric.Registry) *Dispatcher {
	if log == nil {
		log = logger.NewNop()
	}
	d := &Dispatcher{
		store:    store,
		logger:   log,
		metrics:  m,
		commands: make(map[string]*command),
	}

	d.register("GET", 2, d.get)
	d.register("SET", 3, d.set)
	d.register("DELETE", 2, d.del)
	d.register("FLUSH", 1, d.flush)
	d.register("MGET", -2, d.mget)
	d.register("MSET", -3, d.mset)

	return d
}

func (d *Dispatcher) register(name string, arity int, h handlerFunc) {
	d.commands[name] = &command{name: name, arity: arity, handler: h}
}

// Commands returns the registered command names in sorted order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch executes one command line and returns its reply.
// It never returns nil and never panics; handler panics become an internal error reply.
func (d *Dispatcher) Dispatch(ctx context.Context, args [][]byte) (reply resp.Value) {
	if len(args) == 0 {
		return resp.NewError("ERR empty command")
	}

	cmd, ok := d.commands[upperASCII(args[0])]
	if !ok {
		d.logger.WithContext(ctx).Debug("unknown command", "name", logger.Payload(args[0]), "args", len(args)-1)
		d.metrics.RecordCommand("unknown", "error", 0)
		return resp.Errorf("ERR unknown command '%s'", args[0])
	}
	if !cmd.arityOK(len(args)) {
		d.metrics.RecordCommand(cmd.name, "error", 0)
		return wrongArgs(args[0])
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithContext(ctx).Error("command panicked", "command", cmd.name, "panic", r)
			reply = resp.NewError("ERR internal error")
		}
		result := "ok"
		if reply.Kind() == resp.KindError {
			result = "error"
		}
		d.metrics.RecordCommand(cmd.name, result, time.Since(start))
	}()

	return cmd.handler(ctx, args)
}

// upperASCII folds a-z only, so non-ASCII spellings never match a command.
func upperASCII(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func wrongArgs(name []byte) resp.Error {
	return resp.Errorf("ERR wrong number of arguments for '%s'", name)
}

func (d *Dispatcher) get(_ context.Context, args [][]byte) resp.Value {
	v, ok := d.store.Get(args[1])
	if !ok {
		return resp.NullBulk()
	}
	return resp.NewBulk(v)
}

func (d *Dispatcher) set(_ context.Context, args [][]byte) resp.Value {
	d.store.Set(args[1], args[2])
	return resp.NewInteger(1)
}

func (d *Dispatcher) del(_ context.Context, args [][]byte) resp.Value {
	if d.store.Delete(args[1]) {
		return resp.NewInteger(1)
	}
	return resp.NewInteger(0)
}

func (d *Dispatcher) flush(ctx context.Context, _ [][]byte) resp.Value {
	n := d.store.Flush()
	d.logger.WithContext(ctx).Info("store flushed", "removed", n)
	return resp.NewInteger(int64(n))
}

func (d *Dispatcher) mget(_ context.Context, args [][]byte) resp.Value {
	return resp.NewBulkArray(d.store.MGet(args[1:]...))
}

func (d *Dispatcher) mset(_ context.Context, args [][]byte) resp.Value {
	operands := args[1:]
	if len(operands)%2 != 0 {
		return wrongArgs(args[0])
	}
	pairs := make([]storage.KV, 0, len(operands)/2)
	for i := 0; i < len(operands); i += 2 {
		pairs = append(pairs, storage.KV{Key: operands[i], Value: operands[i+1]})
	}
	return resp.NewInteger(int64(d.store.MSet(pairs)))
}
