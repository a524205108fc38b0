package workerpool

import (
	"fmt"
	"runtime"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

func spin(n int) int {
	x := uint64(n) | 1
	for i := 0; i < 1000; i++ {
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
	}
	return int(x & 0xff)
}

func newBenchPool(b *testing.B, workers int, fn ProcessFunc[int, int]) *Pool[int, int] {
	b.Helper()
	logger, _ := logtest.NewNullLogger()
	pool, err := NewWithConfig(Config[int, int]{WorkerCount: workers, Logger: logger}, fn)
	if err != nil {
		b.Fatal(err)
	}
	return pool
}

// BenchmarkSubmitRecv measures the round trip of a single trivial task
func BenchmarkSubmitRecv(b *testing.B) {
	pool := newBenchPool(b, 4, double)
	defer pool.Shutdown()

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
}

// BenchmarkMap measures Map over CPU-bound work for several pool sizes
func BenchmarkMap(b *testing.B) {
	inputs := make([]int, 256)
	for i := range inputs {
		inputs[i] = i
	}

	for _, workers := range []int{1, 2, 4, runtime.NumCPU()} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			pool := newBenchPool(b, workers, spin)
			defer pool.Shutdown()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := pool.Map(inputs); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkTrySubmit measures the non-blocking rejection path
func BenchmarkTrySubmit(b *testing.B) {
	pool := newBenchPool(b, 1, spin)
	defer pool.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if rx, err := pool.TrySubmit(i); err == nil {
			_, _ = rx.Recv()
		}
	}
}
