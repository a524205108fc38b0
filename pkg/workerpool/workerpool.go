package workerpool

import (
	"context"
	"fmt"
	"time"
)

// Submit enqueues input and returns the Receiver for its output. It blocks
// while the queue is full. It fails with ErrPoolClosed once Shutdown has
// begun and with ErrNoWorkers if every worker has died.
func (p *Pool[T, R]) Submit(input T) (*Receiver[R], error) {
	return p.submit(context.Background(), "Submit", input)
}

// SubmitWithContext is Submit that stops waiting for a queue slot when ctx
// is done. A task that made it into the queue is never cancelled.
func (p *Pool[T, R]) SubmitWithContext(ctx context.Context, input T) (*Receiver[R], error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return p.submit(ctx, "SubmitWithContext", input)
}

// SubmitWithTimeout is Submit that waits at most timeout for a queue slot.
func (p *Pool[T, R]) SubmitWithTimeout(input T, timeout time.Duration) (*Receiver[R], error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return p.submit(ctx, "SubmitWithTimeout", input)
}

// TrySubmit enqueues input only if a queue slot is free right now,
// returning ErrQueueFull otherwise.
func (p *Pool[T, R]) TrySubmit(input T) (*Receiver[R], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.acceptable("TrySubmit"); err != nil {
		return nil, err
	}

	t, rx := p.newTask(input)
	select {
	case p.queue <- t:
		p.accepted()
		return rx, nil
	default:
		p.metrics.rejected("full")
		return nil, submitError("TrySubmit", ErrQueueFull).
			WithContext(fmt.Sprintf("queue capacity %d", cap(p.queue)))
	}
}

func (p *Pool[T, R]) submit(ctx context.Context, op string, input T) (*Receiver[R], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.acceptable(op); err != nil {
		return nil, err
	}

	// Check if context is already canceled before attempting to queue
	select {
	case <-ctx.Done():
		p.metrics.rejected("canceled")
		return nil, submitError(op, fmt.Errorf("context done before enqueue: %w", ctx.Err()))
	default:
	}

	t, rx := p.newTask(input)

	select {
	case p.queue <- t:
		p.accepted()
		return rx, nil
	default:
	}

	// Queue full: wait for a worker to free a slot.
	p.metrics.backpressure()
	waitStart := time.Now()
	defer func() { p.metrics.submitWait(time.Since(waitStart)) }()

	select {
	case p.queue <- t:
		p.accepted()
		return rx, nil
	case <-p.exhausted:
		p.metrics.rejected("no_workers")
		return nil, submitError(op, ErrNoWorkers)
	case <-ctx.Done():
		p.metrics.rejected("canceled")
		return nil, submitError(op, fmt.Errorf("waiting for queue slot: %w", ctx.Err()))
	}
}

// acceptable reports why a submission must be refused. Callers hold p.mu.
func (p *Pool[T, R]) acceptable(op string) error {
	if p.closed {
		p.metrics.rejected("closed")
		return submitError(op, ErrPoolClosed)
	}
	select {
	case <-p.exhausted:
		p.metrics.rejected("no_workers")
		return submitError(op, ErrNoWorkers)
	default:
		return nil
	}
}

func (p *Pool[T, R]) newTask(input T) (task[T, R], *Receiver[R]) {
	result := make(chan outcome[R], 1)
	t := task[T, R]{
		input:    input,
		result:   result,
		enqueued: time.Now(),
	}
	return t, newReceiver[R](result, p.exhausted)
}

func (p *Pool[T, R]) accepted() {
	p.submitted.Add(1)
	p.metrics.submitted()
}

// Map submits every input in order and then collects the outputs in that
// same order. Results are positional: results[i] is the output for
// inputs[i] no matter which task finished first.
//
// If a task fails, Map keeps collecting the rest and returns a *TaskError
// for the lowest failing index; failed positions hold the zero value.
func (p *Pool[T, R]) Map(inputs []T) ([]R, error) {
	return p.MapWithContext(context.Background(), inputs)
}

// MapWithContext is Map bounded by ctx. Tasks already submitted when ctx
// ends still run; their outputs are discarded.
func (p *Pool[T, R]) MapWithContext(ctx context.Context, inputs []T) ([]R, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	receivers := make([]*Receiver[R], len(inputs))
	for i, input := range inputs {
		rx, err := p.SubmitWithContext(ctx, input)
		if err != nil {
			return nil, &TaskError{Index: i, Err: err}
		}
		receivers[i] = rx
	}

	results := make([]R, len(inputs))
	var firstErr error
	for i, rx := range receivers {
		value, err := rx.RecvContext(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = &TaskError{Index: i, Err: err}
			}
			if ctx.Err() != nil {
				return results, firstErr
			}
			continue
		}
		results[i] = value
	}
	return results, firstErr
}

// Shutdown closes the queue and blocks until every worker has exited.
// Tasks queued before the call are still processed: Shutdown drains, it
// does not discard. Calling it again waits for the first call to finish.
func (p *Pool[T, R]) Shutdown() {
	p.shutdownOnce.Do(func() {
		go p.terminate()
	})
	<-p.shutdownDone
}

// ShutdownWithContext starts a shutdown like Shutdown but stops waiting
// when ctx is done, returning ctx.Err(). Workers keep draining in the
// background and a later Shutdown still waits for them.
func (p *Pool[T, R]) ShutdownWithContext(ctx context.Context) error {
	p.shutdownOnce.Do(func() {
		go p.terminate()
	})
	select {
	case <-p.shutdownDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool[T, R]) terminate() {
	defer close(p.shutdownDone)

	// Lock waits out senders that are blocked on a full queue.
	p.mu.Lock()
	p.closed = true
	p.state.Store(int32(ShuttingDown))
	close(p.queue)
	p.mu.Unlock()

	p.log.Debug("worker pool draining")
	p.workerWg.Wait()

	// Only reachable when every worker died: whatever is still queued has no
	// one to run it. Closing the result channels disconnects its receivers.
	abandoned := 0
	for t := range p.queue {
		close(t.result)
		abandoned++
	}
	p.metrics.drained()

	p.state.Store(int32(Terminated))
	entry := p.log.WithField("completed", p.completed.Load())
	if abandoned > 0 {
		entry = entry.WithField("abandoned", abandoned)
	}
	entry.Info("worker pool shut down")
}

// State returns the current lifecycle state.
func (p *Pool[T, R]) State() State {
	return State(p.state.Load())
}

// Name returns the pool name used in logs and metrics.
func (p *Pool[T, R]) Name() string {
	return p.config.Name
}

// Size returns the configured number of workers.
func (p *Pool[T, R]) Size() int {
	return p.config.WorkerCount
}

// LiveWorkers returns the number of workers still running. It only drops
// below Size when tasks panicked or after shutdown.
func (p *Pool[T, R]) LiveWorkers() int {
	return int(p.live.Load())
}

// BusyWorkers returns the number of workers currently executing a task.
func (p *Pool[T, R]) BusyWorkers() int {
	return int(p.busy.Load())
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *Pool[T, R]) QueueSize() int {
	return len(p.queue)
}

// QueueCapacity returns the maximum number of queued tasks.
func (p *Pool[T, R]) QueueCapacity() int {
	return cap(p.queue)
}

// TotalSubmitted returns the number of tasks accepted into the queue.
func (p *Pool[T, R]) TotalSubmitted() int64 {
	return p.submitted.Load()
}

// TotalCompleted returns the number of tasks that produced a value.
func (p *Pool[T, R]) TotalCompleted() int64 {
	return p.completed.Load()
}

// TotalPanicked returns the number of tasks whose processing function panicked.
func (p *Pool[T, R]) TotalPanicked() int64 {
	return p.panicked.Load()
}
