//go:build linux

package affinity

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestPinRestoresMask(t *testing.T) {
	var before unix.CPUSet
	if err := unix.SchedGetaffinity(0, &before); err != nil {
		t.Skipf("SchedGetaffinity unavailable: %v", err)
	}

	release, err := Lock(0, true)
	if err != nil {
		release()
		t.Skipf("pinning unavailable: %v", err)
	}

	var pinned unix.CPUSet
	if err := unix.SchedGetaffinity(0, &pinned); err != nil {
		release()
		t.Fatalf("SchedGetaffinity: %v", err)
	}
	release()

	if pinned.Count() != 1 || !pinned.IsSet(0) {
		t.Errorf("thread mask has %d cpus, want only cpu 0", pinned.Count())
	}
}
