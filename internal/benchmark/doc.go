// Package benchmark compares the worker pool against serial execution and
// goroutine-per-task fan-out on the CPU-bound workloads poolbench uses.
//
//	go test -bench=. -benchmem ./internal/benchmark
package benchmark
