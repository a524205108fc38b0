// Package affinity binds worker goroutines to OS threads and, where the
// platform allows it, to individual CPUs.
package affinity

import "runtime"

// Lock wires the calling goroutine to its current OS thread. When pin is
// true it also restricts that thread to CPU cpuID mod runtime.NumCPU().
// The returned release function must be called from the same goroutine;
// it restores the thread's previous CPU mask before unlocking it.
//
// Pinning is best effort: a platform or permission failure leaves the
// goroutine locked but unpinned and is reported through err.
func Lock(cpuID int, pin bool) (release func(), err error) {
	runtime.LockOSThread()
	if !pin {
		return runtime.UnlockOSThread, nil
	}

	restore, err := pinToCore(normalize(cpuID))
	if err != nil {
		return runtime.UnlockOSThread, err
	}
	return func() {
		restore()
		runtime.UnlockOSThread()
	}, nil
}

func normalize(cpuID int) int {
	n := runtime.NumCPU()
	cpuID %= n
	if cpuID < 0 {
		cpuID += n
	}
	return cpuID
}
