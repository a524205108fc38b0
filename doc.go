/*
Package boundpool provides a generic, bounded worker pool for CPU-bound work in Go.

Packages:
  - pkg/workerpool: fixed worker set, bounded FIFO queue, per-task result receivers
  - pkg/metrics: Prometheus instrumentation for pools
  - pkg/common/errors, pkg/common/validation: shared error types and config checks

Tools:
  - cmd/poolbench: throughput and speedup sweeps across worker counts

Example usage:

	import "github.com/vnykmshr/boundpool/pkg/workerpool"

	pool := workerpool.New(4, func(x int) int { return x * x })
	defer pool.Shutdown()

	rx, _ := pool.Submit(5)
	v, _ := rx.Recv() // 25

	squares, _ := pool.Map([]int{1, 2, 3, 4}) // [1 4 9 16]
*/
package boundpool
