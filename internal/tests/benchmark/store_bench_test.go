package benchmark

import (
	"fmt"
	"testing"

	"github.com/yndnr/respkv/internal/storage"
	"github.com/yndnr/respkv/internal/storage/memory"
)

// BenchmarkStoreSet benchmarks writes into a preloaded store.
func BenchmarkStoreSet(b *testing.B) {
	runWithKeyCounts(b, SmallKeyCounts, func(b *testing.B, count int) {
		store := memory.New()
		keys := prefillStore(store, count)
		value := make([]byte, 64)

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			store.Set(keys[i%len(keys)], value)
		}

		b.StopTimer()
		reportMemory(b, "mem")
	})
}

// BenchmarkStoreSetValueSize benchmarks writes of different value sizes.
func BenchmarkStoreSetValueSize(b *testing.B) {
	for _, size := range ValueSizes {
		b.Run(fmt.Sprintf("bytes_%d", size), func(b *testing.B) {
			store := memory.New()
			key := []byte("k")
			value := make([]byte, size)

			b.SetBytes(int64(size))
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				store.Set(key, value)
			}
		})
	}
}

// BenchmarkStoreGet benchmarks reads at various scales.
func BenchmarkStoreGet(b *testing.B) {
	runWithKeyCounts(b, SmallKeyCounts, func(b *testing.B, count int) {
		store := memory.New()
		keys := prefillStore(store, count)

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if _, ok := store.Get(keys[i%len(keys)]); !ok {
				b.Fatal("key missing")
			}
		}
	})
}

// BenchmarkStoreGetParallel benchmarks concurrent reads across shards.
func BenchmarkStoreGetParallel(b *testing.B) {
	for _, shards := range []int{1, 16, 64} {
		b.Run(fmt.Sprintf("shards_%d", shards), func(b *testing.B) {
			store := memory.New(memory.WithShardCount(shards))
			keys := prefillStore(store, 10000)

			b.ResetTimer()
			b.ReportAllocs()

			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					store.Get(keys[i%len(keys)])
					i++
				}
			})
		})
	}
}

// BenchmarkStoreMixedParallel benchmarks a 90/10 read/write mix.
func BenchmarkStoreMixedParallel(b *testing.B) {
	store := memory.New()
	keys := prefillStore(store, 10000)
	value := make([]byte, 64)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			k := keys[i%len(keys)]
			if i%10 == 0 {
				store.Set(k, value)
			} else {
				store.Get(k)
			}
			i++
		}
	})
}

// BenchmarkStoreMSet benchmarks batched writes.
func BenchmarkStoreMSet(b *testing.B) {
	for _, batch := range []int{10, 100} {
		b.Run(fmt.Sprintf("batch_%d", batch), func(b *testing.B) {
			store := memory.New()
			pairs := make([]storage.KV, batch)
			for i := range pairs {
				pairs[i] = storage.KV{Key: newKey(), Value: make([]byte, 64)}
			}

			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				store.MSet(pairs)
			}
		})
	}
}

// BenchmarkStoreFlush benchmarks clearing a loaded store.
func BenchmarkStoreFlush(b *testing.B) {
	runWithKeyCounts(b, SmallKeyCounts, func(b *testing.B, count int) {
		store := memory.New()
		keys := make([][]byte, count)
		for i := range keys {
			keys[i] = newKey()
		}
		value := make([]byte, 16)

		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			b.StopTimer()
			for _, k := range keys {
				store.Set(k, value)
			}
			b.StartTimer()

			if n := store.Flush(); n != count {
				b.Fatalf("Flush() = %d, want %d", n, count)
			}
		}
	})
}
