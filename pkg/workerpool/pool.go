package workerpool

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	bperrors "github.com/vnykmshr/boundpool/pkg/common/errors"
	"github.com/vnykmshr/boundpool/pkg/common/validation"
	"github.com/vnykmshr/boundpool/pkg/metrics"
)

const module = "workerpool"

// ProcessFunc turns one input into one output. A pool shares a single
// ProcessFunc between all of its workers, so it must be safe to call
// concurrently; any state it mutates is the caller's to synchronise.
type ProcessFunc[T, R any] func(input T) R

// State is a point in the pool lifecycle.
type State int32

const (
	// Open pools accept submissions.
	Open State = iota
	// ShuttingDown pools have closed their queue and are draining it.
	ShuttingDown
	// Terminated pools have joined every worker.
	Terminated
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case ShuttingDown:
		return "shutting_down"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Config holds configuration options for creating a worker pool.
type Config[T, R any] struct {
	// Name identifies the pool in logs and metrics.
	// Defaults to "pool-" followed by eight random hex characters.
	Name string

	// WorkerCount is the fixed number of workers. Must be greater than 0.
	WorkerCount int

	// QueueCapacity bounds the number of tasks waiting for a worker.
	// Zero selects the default of 2 × WorkerCount: one task in flight and
	// one queued successor per worker.
	QueueCapacity int

	// RateLimit caps how many tasks per second the workers start, shared
	// across the pool. Zero disables limiting.
	RateLimit rate.Limit

	// RateBurst is the limiter bucket size. Defaults to WorkerCount when
	// RateLimit is set.
	RateBurst int

	// LockOSThread dedicates an OS thread to each worker for its lifetime.
	LockOSThread bool

	// PinWorkers additionally pins worker i to CPU i mod NumCPU where the
	// platform supports it. Implies LockOSThread.
	PinWorkers bool

	// Logger receives lifecycle and failure events. Defaults to the logrus
	// standard logger.
	Logger logrus.FieldLogger

	// Metrics receives pool instrumentation. Nil disables metrics.
	Metrics *metrics.Registry

	// PanicHandler is called with the input whose processing panicked,
	// after the panic has been delivered to that task's receiver. It runs
	// on the dying worker and must not panic itself.
	PanicHandler func(workerID int, input T, recovered interface{})

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker exits. cause is nil for a clean
	// exit after shutdown and a *PanicError when a task killed the worker.
	OnWorkerStop func(workerID int, cause error)
}

// Pool is a fixed-size set of workers fed by a bounded queue. Each submitted
// input yields its own Receiver for the output.
//
// All methods are safe for concurrent use.
type Pool[T, R any] struct {
	config  Config[T, R]
	process ProcessFunc[T, R]
	log     logrus.FieldLogger
	metrics poolMetrics
	limiter *rate.Limiter

	// mu guards closed against senders blocked on queue, so the queue is
	// never closed underneath a send.
	mu        sync.RWMutex
	closed    bool
	queue     chan task[T, R]
	exhausted chan struct{}

	state        atomic.Int32
	shutdownOnce sync.Once
	shutdownDone chan struct{}
	workerWg     sync.WaitGroup

	live      atomic.Int32
	dead      atomic.Int32
	busy      atomic.Int32
	submitted atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
}

// task is the unit carried by the queue.
type task[T, R any] struct {
	input    T
	result   chan outcome[R]
	enqueued time.Time
}

// New creates a pool with workerCount workers and the default queue
// capacity. It panics if workerCount < 1 or process is nil; use NewSafe to
// get an error instead.
func New[T, R any](workerCount int, process ProcessFunc[T, R]) *Pool[T, R] {
	p, err := NewSafe(workerCount, process)
	if err != nil {
		panic(err)
	}
	return p
}

// NewSafe is New returning a validation error instead of panicking.
func NewSafe[T, R any](workerCount int, process ProcessFunc[T, R]) (*Pool[T, R], error) {
	return NewWithConfig(Config[T, R]{WorkerCount: workerCount}, process)
}

// NewWithConfig creates a pool from config and starts its workers.
func NewWithConfig[T, R any](config Config[T, R], process ProcessFunc[T, R]) (*Pool[T, R], error) {
	if err := validateConfig(config, process); err != nil {
		return nil, err
	}

	if config.Name == "" {
		config.Name = "pool-" + uuid.NewString()[:8]
	}
	if config.QueueCapacity == 0 {
		config.QueueCapacity = 2 * config.WorkerCount
	}
	if config.RateLimit > 0 && config.RateBurst == 0 {
		config.RateBurst = config.WorkerCount
	}
	if config.PinWorkers {
		config.LockOSThread = true
	}

	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	p := &Pool[T, R]{
		config:       config,
		process:      process,
		log:          logger.WithField("pool", config.Name),
		metrics:      poolMetrics{reg: config.Metrics, name: config.Name},
		queue:        make(chan task[T, R], config.QueueCapacity),
		exhausted:    make(chan struct{}),
		shutdownDone: make(chan struct{}),
	}
	if config.RateLimit > 0 {
		p.limiter = rate.NewLimiter(config.RateLimit, config.RateBurst)
	}

	p.metrics.started(config.WorkerCount, config.QueueCapacity)

	p.live.Store(int32(config.WorkerCount))
	for i := 0; i < config.WorkerCount; i++ {
		w := &worker[T, R]{id: i, pool: p}
		p.workerWg.Add(1)
		go w.run()
	}

	p.log.WithFields(logrus.Fields{
		"workers":        config.WorkerCount,
		"queue_capacity": config.QueueCapacity,
	}).Debug("worker pool started")

	return p, nil
}

func validateConfig[T, R any](config Config[T, R], process ProcessFunc[T, R]) error {
	if process == nil {
		return bperrors.NewValidationError(module, "process", nil, "cannot be nil").
			WithHint("provide a processing function")
	}
	if err := validation.ValidatePositive(module, "WorkerCount", config.WorkerCount); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative(module, "QueueCapacity", config.QueueCapacity); err != nil {
		return err
	}
	if err := validation.ValidateNonNegativeFloat(module, "RateLimit", float64(config.RateLimit)); err != nil {
		return err
	}
	return validation.ValidateNonNegative(module, "RateBurst", config.RateBurst)
}
