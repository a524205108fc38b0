package workload

import (
	"testing"
	"time"

	"github.com/vnykmshr/boundpool/internal/testutil"
	bperrors "github.com/vnykmshr/boundpool/pkg/common/errors"
)

func TestCountPrimes(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{2, 1},
		{10, 4},
		{100, 25},
		{1000, 168},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, CountPrimes(tt.n), tt.want)
	}
}

func TestIsPrime(t *testing.T) {
	for _, p := range []int{2, 3, 5, 7, 97, 7919} {
		testutil.AssertEqual(t, IsPrime(p), true)
	}
	for _, c := range []int{-7, 0, 1, 4, 9, 91, 7917} {
		testutil.AssertEqual(t, IsPrime(c), false)
	}
}

func TestDeterministic(t *testing.T) {
	testutil.AssertEqual(t, Hash(12, 50), Hash(12, 50))
	testutil.AssertNotEqual(t, Hash(12, 50), Hash(13, 50))
	testutil.AssertNotEqual(t, Hash(12, 1), Hash(12, 2))

	testutil.AssertEqual(t, Spin(5, 1000), Spin(5, 1000))
	testutil.AssertEqual(t, Spin(0, 10), Spin(1, 10))
	testutil.AssertEqual(t, Spin(9, 0), uint64(9))
}

func TestLookup(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			fn, err := Lookup(name, 64)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, fn(3), fn(3))
		})
	}

	_, err := Lookup("sleep", 10)
	testutil.AssertErrorIs(t, err, bperrors.ErrInvalidConfiguration)

	_, err = Lookup("hash", 0)
	testutil.AssertErrorIs(t, err, bperrors.ErrInvalidConfiguration)
}

func TestPercentiles(t *testing.T) {
	samples := make([]time.Duration, 100)
	for i := range samples {
		samples[i] = time.Duration(100-i) * time.Millisecond
	}

	p50, p95, p99 := Percentiles(samples)
	testutil.AssertEqual(t, p50, 51*time.Millisecond)
	testutil.AssertEqual(t, p95, 96*time.Millisecond)
	testutil.AssertEqual(t, p99, 100*time.Millisecond)

	z50, _, _ := Percentiles([]float64(nil))
	testutil.AssertEqual(t, z50, 0.0)
}
