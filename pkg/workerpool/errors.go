package workerpool

import (
	"errors"
	"fmt"

	bperrors "github.com/vnykmshr/boundpool/pkg/common/errors"
)

var (
	// ErrPoolClosed is returned by submissions made after Shutdown began.
	ErrPoolClosed = fmt.Errorf("worker pool is shut down: %w", bperrors.ErrClosed)

	// ErrQueueFull is returned by TrySubmit when no queue slot is free.
	ErrQueueFull = fmt.Errorf("task queue is full: %w", bperrors.ErrCapacityExceeded)

	// ErrNoWorkers is returned once every worker has been killed by a
	// panicking task; nothing is left to serve the queue.
	ErrNoWorkers = errors.New("worker pool has no live workers")

	// ErrDisconnected means a task's result channel closed without a value.
	ErrDisconnected = errors.New("result channel disconnected")

	// ErrReceived is returned when a Receiver is read after it already
	// produced its outcome.
	ErrReceived = errors.New("result already received")

	// errGoexit is the PanicError value for a processing function that
	// called runtime.Goexit instead of returning.
	errGoexit = errors.New("processing function called runtime.Goexit")
)

// PanicError reports a processing function panic. It unwraps to
// ErrDisconnected: the task produced no value.
type PanicError struct {
	WorkerID int
	Value    interface{}
	Stack    []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker %d panicked: %v", e.WorkerID, e.Value)
}

func (e *PanicError) Unwrap() error {
	return ErrDisconnected
}

// TaskError locates a failure inside a Map call.
type TaskError struct {
	Index int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %d: %v", e.Index, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

func submitError(op string, cause error) *bperrors.OperationError {
	return bperrors.NewOperationError(module, op, cause)
}
