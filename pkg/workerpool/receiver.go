package workerpool

import (
	"context"
	"sync"
	"time"
)

// outcome is what travels on a task's result channel.
type outcome[R any] struct {
	value R
	err   error
}

// Receiver is the caller's end of one task's single-use result channel.
// It yields exactly one outcome: the value, or an error wrapping
// ErrDisconnected if the task's worker died without producing one.
type Receiver[R any] struct {
	mu        sync.Mutex
	ch        <-chan outcome[R]
	exhausted <-chan struct{}
	done      bool
}

func newReceiver[R any](ch <-chan outcome[R], exhausted <-chan struct{}) *Receiver[R] {
	return &Receiver[R]{ch: ch, exhausted: exhausted}
}

// Recv blocks until the task's outcome is available.
func (r *Receiver[R]) Recv() (R, error) {
	return r.RecvContext(context.Background())
}

// RecvTimeout is Recv bounded by timeout. On timeout the outcome is not
// consumed and a later call can still collect it.
func (r *Receiver[R]) RecvTimeout(timeout time.Duration) (R, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.RecvContext(ctx)
}

// RecvContext is Recv bounded by ctx. If ctx ends first, ctx.Err() is
// returned and the outcome stays available. A nil ctx never ends.
func (r *Receiver[R]) RecvContext(ctx context.Context) (R, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero R
	if r.done {
		return zero, ErrReceived
	}

	select {
	case o, ok := <-r.ch:
		return r.settle(o, ok)
	case <-r.exhausted:
		// The last worker may have delivered before it died.
		select {
		case o, ok := <-r.ch:
			return r.settle(o, ok)
		default:
			r.done = true
			return zero, ErrDisconnected
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// TryRecv returns the outcome if it is ready. ready is false when the task
// has not finished yet.
func (r *Receiver[R]) TryRecv() (value R, ready bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return value, true, ErrReceived
	}

	// Checked first: once exhausted is closed every delivery has happened.
	var gone bool
	select {
	case <-r.exhausted:
		gone = true
	default:
	}

	select {
	case o, ok := <-r.ch:
		value, err = r.settle(o, ok)
		return value, true, err
	default:
	}
	if gone {
		r.done = true
		return value, true, ErrDisconnected
	}
	return value, false, nil
}

func (r *Receiver[R]) settle(o outcome[R], ok bool) (R, error) {
	r.done = true
	if !ok {
		var zero R
		return zero, ErrDisconnected
	}
	return o.value, o.err
}
