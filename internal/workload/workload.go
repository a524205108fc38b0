// Package workload provides CPU-bound processing functions for exercising
// worker pools. Every function is pure and deterministic for a given input,
// so results computed in a pool can be checked against a serial run.
package workload

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/vnykmshr/boundpool/pkg/common/validation"
)

const module = "workload"

// Func processes one task id at a given complexity.
type Func func(id int) uint64

// Names lists the registered workloads in a stable order.
var Names = []string{"primes", "hash", "spin"}

// Lookup returns the named workload bound to complexity.
func Lookup(name string, complexity int) (Func, error) {
	if err := validation.ValidateOneOf(module, "name", name, Names...); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive(module, "complexity", complexity); err != nil {
		return nil, err
	}

	switch name {
	case "primes":
		return func(id int) uint64 { return uint64(CountPrimes(complexity + id%complexity)) }, nil
	case "hash":
		return func(id int) uint64 { return Hash(id, complexity) }, nil
	case "spin":
		return func(id int) uint64 { return Spin(id, complexity) }, nil
	}
	return nil, fmt.Errorf("workload %q not wired", name)
}

// CountPrimes returns the number of primes <= n by trial division.
func CountPrimes(n int) int {
	count := 0
	for i := 2; i <= n; i++ {
		if IsPrime(i) {
			count++
		}
	}
	return count
}

// IsPrime reports whether n is prime.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	limit := int(math.Sqrt(float64(n)))
	for d := 3; d <= limit; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Hash iterates sha256 rounds times over the id and returns the first eight
// bytes of the final digest.
func Hash(id, rounds int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(id))
	sum := sha256.Sum256(buf[:])
	for i := 1; i < rounds; i++ {
		sum = sha256.Sum256(sum[:])
	}
	return binary.LittleEndian.Uint64(sum[:8])
}

// Spin runs an xorshift generator for iterations steps seeded by id.
func Spin(id, iterations int) uint64 {
	state := uint64(id)
	if state == 0 {
		state = 1
	}
	for i := 0; i < iterations; i++ {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
	}
	return state
}

// Percentiles returns the p50, p95 and p99 of samples. samples is sorted in
// place.
func Percentiles[T ~int64 | ~float64](samples []T) (p50, p95, p99 T) {
	n := len(samples)
	if n == 0 {
		return 0, 0, 0
	}
	slices.Sort(samples)

	at := func(pct int) T {
		idx := n * pct / 100
		if idx >= n {
			idx = n - 1
		}
		return samples[idx]
	}
	return at(50), at(95), at(99)
}
