package benchmark

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/vnykmshr/boundpool/internal/workload"
	"github.com/vnykmshr/boundpool/pkg/workerpool"
)

const (
	batchSize  = 512
	complexity = 2000
)

func batch() []int {
	ids := make([]int, batchSize)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func lookup(b *testing.B, name string) workload.Func {
	b.Helper()
	fn, err := workload.Lookup(name, complexity)
	if err != nil {
		b.Fatalf("failed to look up workload: %v", err)
	}
	return fn
}

// BenchmarkSerial is the single-goroutine baseline.
func BenchmarkSerial(b *testing.B) {
	ids := batch()
	for _, name := range workload.Names {
		b.Run(name, func(b *testing.B) {
			fn := lookup(b, name)
			out := make([]uint64, len(ids))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for j, id := range ids {
					out[j] = fn(id)
				}
			}
		})
	}
}

// BenchmarkGoroutinePerTask spawns one goroutine per input with no bound.
func BenchmarkGoroutinePerTask(b *testing.B) {
	ids := batch()
	for _, name := range workload.Names {
		b.Run(name, func(b *testing.B) {
			fn := lookup(b, name)
			out := make([]uint64, len(ids))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var wg sync.WaitGroup
				for j, id := range ids {
					wg.Add(1)
					go func() {
						defer wg.Done()
						out[j] = fn(id)
					}()
				}
				wg.Wait()
			}
		})
	}
}

// BenchmarkPoolMap runs the batch through Map for several pool sizes.
func BenchmarkPoolMap(b *testing.B) {
	ids := batch()
	logger, _ := logtest.NewNullLogger()

	for _, name := range workload.Names {
		for _, workers := range []int{1, runtime.NumCPU()} {
			b.Run(fmt.Sprintf("%s/%s", name, workerLabel(workers)), func(b *testing.B) {
				fn := lookup(b, name)
				pool, err := workerpool.NewWithConfig(workerpool.Config[int, uint64]{
					WorkerCount: workers,
					Logger:      logger,
				}, workerpool.ProcessFunc[int, uint64](fn))
				if err != nil {
					b.Fatalf("failed to create pool: %v", err)
				}
				defer pool.Shutdown()

				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := pool.Map(ids); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkPoolSubmitParallel measures submission contention from many
// goroutines on a trivial task.
func BenchmarkPoolSubmitParallel(b *testing.B) {
	for _, workers := range []int{2, 4, 8} {
		b.Run(workerLabel(workers), func(b *testing.B) {
			pool, err := workerpool.NewSafe(workers, func(x int) int { return x })
			if err != nil {
				b.Fatalf("failed to create pool: %v", err)
			}
			defer pool.Shutdown()

			b.ReportAllocs()
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					rx, err := pool.Submit(1)
					if err != nil {
						b.Error(err)
						return
					}
					_, _ = rx.Recv()
				}
			})
		})
	}
}

// workerLabel returns a readable label for worker counts.
func workerLabel(workers int) string {
	return fmt.Sprintf("%dw", workers)
}
