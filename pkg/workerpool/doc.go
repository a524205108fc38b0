/*
Package workerpool provides a generic, bounded worker pool for CPU-bound work.

A Pool owns a fixed number of workers and a bounded FIFO queue. Every
submitted input gets its own single-use Receiver through which exactly one
outcome is delivered: the processed value, or an error saying the task
produced none.

Basic usage:

	pool := workerpool.New(4, func(x int) int { return x * x })
	defer pool.Shutdown()

	rx, err := pool.Submit(5)
	if err != nil {
		log.Fatal(err)
	}
	v, err := rx.Recv() // 25

	squares, err := pool.Map([]int{1, 2, 3, 4}) // [1 4 9 16]

Backpressure:

The queue holds 2 × WorkerCount tasks unless Config.QueueCapacity says
otherwise: one task in flight and one queued successor per worker. When it is
full, Submit blocks until a worker takes a task. At most
QueueCapacity + WorkerCount tasks are ever accepted but unfinished.
SubmitWithContext and SubmitWithTimeout bound that wait; TrySubmit never waits
and returns ErrQueueFull.

Results:

Submit returns as soon as the task is queued. The caller decides when to wait:

	rx, _ := pool.Submit(input)
	v, err := rx.RecvTimeout(time.Second)   // bounded wait, retryable
	v, ready, err := rx.TryRecv()           // poll

Map submits every input before it reads any output, then reads outputs in
input order. results[i] always corresponds to inputs[i]; completion order is
not observable through Map. Callers who want results as they finish should
Submit and race their own receivers.

Failures:

A panic in the processing function is recovered at the worker boundary and
delivered to that task's Receiver as a *PanicError, which satisfies
errors.Is(err, ErrDisconnected). The worker that ran the task then exits and
is not replaced, so LiveWorkers drops by one for the rest of the pool's life.
Other tasks and workers are unaffected. Config.PanicHandler and
Config.OnWorkerStop observe the death.

If every worker dies the pool is exhausted: Submit returns ErrNoWorkers and
receivers of tasks left in the queue return ErrDisconnected instead of
blocking.

Shutdown:

	pool.Shutdown()

closes the queue and waits for all workers to exit. Anything queued before
the call is still processed, so every Receiver obtained earlier resolves.
Submissions after Shutdown began fail with ErrPoolClosed. Shutdown is safe to
call more than once. ShutdownWithContext bounds the wait; a worker stuck in a
processing function that never returns is a liveness problem Shutdown cannot
fix, since running tasks are never interrupted.

Configuration:

	pool, err := workerpool.NewWithConfig(workerpool.Config[string, Digest]{
		Name:          "digests",
		WorkerCount:   runtime.NumCPU(),
		QueueCapacity: 64,
		LockOSThread:  true,
		Logger:        logrus.WithField("component", "hasher"),
		Metrics:       metrics.NewRegistry(prometheus.DefaultRegisterer),
		OnWorkerStop: func(id int, cause error) {
			if cause != nil {
				alert(id, cause)
			}
		},
	}, digest)

LockOSThread gives each worker a dedicated OS thread and PinWorkers pins
those threads to CPUs on Linux. RateLimit caps how many tasks per second the
pool starts.

Thread Safety:

All Pool and Receiver methods are safe for concurrent use. A Receiver yields
its outcome once; later reads return ErrReceived.
*/
package workerpool
