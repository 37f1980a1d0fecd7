package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yndnr/respkv/internal/resp"
	"github.com/yndnr/respkv/pkg/client"
)

// Latencies are recorded in microseconds up to one minute.
const (
	histMin     = 1
	histMax     = int64(time.Minute / time.Microsecond)
	histSigFigs = 3
)

// BenchCommand returns the bench command.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Run concurrent SET/GET load against the server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "clients",
				Aliases: []string{"c"},
				Value:   8,
				Usage:   "Number of concurrent clients",
			},
			&cli.IntFlag{
				Name:    "requests",
				Aliases: []string{"n"},
				Value:   10000,
				Usage:   "Requests per operation",
			},
			&cli.IntFlag{
				Name:    "data-size",
				Aliases: []string{"d"},
				Value:   16,
				Usage:   "Value size in bytes",
			},
			&cli.IntFlag{
				Name:  "keyspace",
				Value: 1000,
				Usage: "Number of distinct keys",
			},
			&cli.StringFlag{
				Name:  "ops",
				Value: "set,get",
				Usage: "Operations to run, comma separated (set, get)",
			},
		},
		Action: bench,
	}
}

// BenchConfig controls one benchmark run.
type BenchConfig struct {
	Clients  int
	Requests int
	DataSize int
	Keyspace int
}

// BenchResult summarizes one operation.
type BenchResult struct {
	Op        string        `json:"op" yaml:"op"`
	Requests  int64         `json:"requests" yaml:"requests"`
	Errors    int64         `json:"errors" yaml:"errors"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
	OpsPerSec float64       `json:"ops_per_sec" yaml:"ops_per_sec"`
	P50       time.Duration `json:"p50_ns" yaml:"p50_ns"`
	P99       time.Duration `json:"p99_ns" yaml:"p99_ns"`
	Max       time.Duration `json:"max_ns" yaml:"max_ns"`
}

func (r BenchResult) String() string {
	return fmt.Sprintf("%-4s %8d requests in %v, %d errors, %.0f ops/sec, p50 %v, p99 %v, max %v",
		strings.ToUpper(r.Op), r.Requests, r.Duration.Round(time.Millisecond), r.Errors,
		r.OpsPerSec, r.P50, r.P99, r.Max)
}

// BenchReport is the output of the bench command.
type BenchReport struct {
	Server  string        `json:"server" yaml:"server"`
	Clients int           `json:"clients" yaml:"clients"`
	Results []BenchResult `json:"results" yaml:"results"`
}

func (r BenchReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %d clients\n", r.Server, r.Clients)
	for _, res := range r.Results {
		b.WriteString(res.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func bench(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	cfg := BenchConfig{
		Clients:  c.Int("clients"),
		Requests: c.Int("requests"),
		DataSize: c.Int("data-size"),
		Keyspace: c.Int("keyspace"),
	}
	if cfg.Clients <= 0 || cfg.Requests <= 0 || cfg.Keyspace <= 0 || cfg.DataSize < 0 {
		return errors.New("bench: clients, requests and keyspace must be positive")
	}

	ctx := c.Context
	pool := client.NewPool(ctx, flags.Server,
		client.PoolConfig{MaxTotal: cfg.Clients, MaxIdle: cfg.Clients},
		client.WithDialTimeout(flags.Timeout),
		client.WithTimeout(flags.Timeout),
	)
	defer pool.Close(ctx)

	report := BenchReport{Server: flags.Server, Clients: cfg.Clients}
	for _, op := range strings.Split(c.String("ops"), ",") {
		op = strings.ToLower(strings.TrimSpace(op))
		if op == "" {
			continue
		}
		res, err := RunBench(ctx, pool, cfg, op)
		if err != nil {
			return err
		}
		report.Results = append(report.Results, res)
	}
	return Print(c, report)
}

// RunBench issues cfg.Requests commands of kind op from cfg.Clients workers.
func RunBench(ctx context.Context, pool *client.Pool, cfg BenchConfig, op string) (BenchResult, error) {
	if op != "set" && op != "get" {
		return BenchResult{}, fmt.Errorf("bench: unknown operation %q", op)
	}

	value := make([]byte, cfg.DataSize)
	for i := range value {
		value[i] = 'x'
	}

	var next, errs atomic.Int64
	hists := make([]*hdrhistogram.Histogram, cfg.Clients)
	g, gctx := errgroup.WithContext(ctx)

	start := time.Now()
	for w := 0; w < cfg.Clients; w++ {
		hist := hdrhistogram.New(histMin, histMax, histSigFigs)
		hists[w] = hist
		g.Go(func() error {
			return pool.With(gctx, func(cl *client.Client) error {
				for {
					n := next.Add(1) - 1
					if n >= int64(cfg.Requests) {
						return nil
					}
					key := []byte("bench:" + strconv.FormatInt(n%int64(cfg.Keyspace), 10))

					t0 := time.Now()
					var (
						v   resp.Value
						err error
					)
					if op == "set" {
						v, err = cl.Do(gctx, []byte("SET"), key, value)
					} else {
						v, err = cl.Do(gctx, []byte("GET"), key)
					}
					if err != nil {
						return err
					}
					_ = hist.RecordValue(clamp(time.Since(t0).Microseconds()))
					if _, ok := v.(resp.Error); ok {
						errs.Add(1)
					}
				}
			})
		})
	}
	if err := g.Wait(); err != nil {
		return BenchResult{}, fmt.Errorf("bench %s: %w", op, err)
	}
	elapsed := time.Since(start)

	total := hdrhistogram.New(histMin, histMax, histSigFigs)
	for _, h := range hists {
		total.Merge(h)
	}

	return BenchResult{
		Op:        op,
		Requests:  total.TotalCount(),
		Errors:    errs.Load(),
		Duration:  elapsed,
		OpsPerSec: float64(total.TotalCount()) / elapsed.Seconds(),
		P50:       time.Duration(total.ValueAtQuantile(50)) * time.Microsecond,
		P99:       time.Duration(total.ValueAtQuantile(99)) * time.Microsecond,
		Max:       time.Duration(total.Max()) * time.Microsecond,
	}, nil
}

func clamp(us int64) int64 {
	if us < histMin {
		return histMin
	}
	if us > histMax {
		return histMax
	}
	return us
}
