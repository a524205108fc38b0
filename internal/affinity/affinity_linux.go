//go:build linux

package affinity

import (
	"golang.org/x/sys/unix"
)

// pinToCore restricts the current OS thread to cpuID.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) (restore func(), err error) {
	var previous unix.CPUSet
	if err := unix.SchedGetaffinity(0, &previous); err != nil {
		return nil, err
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return nil, err
	}

	return func() {
		_ = unix.SchedSetaffinity(0, &previous)
	}, nil
}
