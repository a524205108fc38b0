package workerpool

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vnykmshr/boundpool/internal/affinity"
)

// worker is one long-lived consumer of the pool queue.
type worker[T, R any] struct {
	id   int
	pool *Pool[T, R]
}

// run is the main loop for a worker. It returns when the queue is closed and
// drained, or after a task panicked or called runtime.Goexit; a dead worker
// is never replaced.
func (w *worker[T, R]) run() {
	p := w.pool
	defer p.workerWg.Done()

	log := p.log.WithField("worker", w.id)

	if p.config.LockOSThread {
		release, err := affinity.Lock(w.id, p.config.PinWorkers)
		if err != nil {
			log.WithError(err).Warn("cpu pinning unavailable, running unpinned")
		}
		defer release()
	}

	if p.config.OnWorkerStart != nil {
		p.config.OnWorkerStart(w.id)
	}
	log.Debug("worker started")

	var cause *PanicError
	finished := false
	defer func() {
		// Unwinding without a recovered panic means runtime.Goexit.
		if !finished && cause == nil {
			cause = &PanicError{WorkerID: w.id, Value: errGoexit}
		}
		w.exit(log, cause)
	}()

	for t := range p.queue {
		if cause = w.execute(t); cause != nil {
			return
		}
	}
	finished = true
}

// execute runs one task and delivers its outcome. It returns the recovered
// panic, if any, so run can retire the worker.
func (w *worker[T, R]) execute(t task[T, R]) (perr *PanicError) {
	p := w.pool

	if p.limiter != nil {
		// Background never cancels and burst >= 1, so Wait cannot fail.
		_ = p.limiter.Wait(context.Background())
	}

	start := time.Now()
	p.busy.Add(1)
	p.metrics.taskStarted(start.Sub(t.enqueued))

	returned := false
	defer func() {
		r := recover()
		failed := r != nil || !returned
		if failed {
			value := r
			if r == nil {
				value = errGoexit
			}
			perr = &PanicError{WorkerID: w.id, Value: value, Stack: debug.Stack()}
			p.panicked.Add(1)
			t.result <- outcome[R]{err: perr}
		}
		close(t.result)
		p.busy.Add(-1)
		p.metrics.taskFinished(time.Since(start), failed)

		if r != nil && p.config.PanicHandler != nil {
			p.config.PanicHandler(w.id, t.input, r)
		}
	}()

	value := p.process(t.input)
	returned = true
	p.completed.Add(1)
	t.result <- outcome[R]{value: value}
	return nil
}

// exit records the worker's departure. The last worker to die from a panic
// or runtime.Goexit marks the pool exhausted so nobody waits on a queue no one serves.
func (w *worker[T, R]) exit(log logrus.FieldLogger, cause *PanicError) {
	p := w.pool
	live := p.live.Add(-1)
	p.metrics.workerExited(int(live), cause != nil)

	var stopErr error
	if cause != nil {
		stopErr = cause
		log.WithFields(logrus.Fields{
			"panic":        cause.Value,
			"live_workers": live,
		}).Error("worker terminated by panicking task")

		if int(p.dead.Add(1)) == p.config.WorkerCount {
			close(p.exhausted)
			log.Warn("all workers terminated, pool exhausted")
		}
	} else {
		log.Debug("worker stopped")
	}

	if p.config.OnWorkerStop != nil {
		p.config.OnWorkerStop(w.id, stopErr)
	}
}
