package benchmark

import (
	"context"
	"crypto/rand"
	"fmt"
	"net"
	"runtime"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/respkv/internal/server/respserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// KeyCounts defines the preloaded key counts for benchmarking.
var KeyCounts = []int{10000, 100000, 500000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 10000}

// ValueSizes are the value sizes in bytes used by write benchmarks.
var ValueSizes = []int{16, 1024, 64 * 1024}

// newKey generates a ULID-based key.
func newKey() []byte {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, _ := ulid.New(ulid.Timestamp(time.Now()), entropy)
	return []byte("key:" + id.String())
}

// prefillStore fills a store with count keys and returns them.
func prefillStore(store *memory.Store, count int) [][]byte {
	keys := make([][]byte, count)
	value := make([]byte, 64)
	for i := 0; i < count; i++ {
		keys[i] = newKey()
		store.Set(keys[i], value)
	}
	return keys
}

// startServer runs a RESP server on a loopback port for b.
func startServer(b *testing.B, store *memory.Store) string {
	b.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		b.Fatalf("listen: %v", err)
	}

	cfg := respserver.DefaultConfig()
	cfg.MaxClients = 0
	srv := respserver.New(cfg, store, respserver.WithLogger(logger.NewNop()))
	served := make(chan error, 1)
	go func() { served <- srv.Serve(context.Background(), ln) }()

	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		<-served
	})
	return ln.Addr().String()
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithKeyCounts runs a benchmark function with various preloaded key counts.
func runWithKeyCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
