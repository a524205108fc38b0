// Package metrics provides Prometheus instrumentation for boundpool components.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for worker pools.
type Registry struct {
	// Submission Metrics
	TasksSubmitted     *prometheus.CounterVec
	SubmitsRejected    *prometheus.CounterVec
	BackpressureEvents *prometheus.CounterVec
	SubmitWaitDuration *prometheus.HistogramVec

	// Execution Metrics
	TasksCompleted        *prometheus.CounterVec
	TasksPanicked         *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	QueueWaitDuration     *prometheus.HistogramVec

	// Pool State Metrics
	WorkerPoolSize     *prometheus.GaugeVec
	WorkerPoolLive     *prometheus.GaugeVec
	WorkerPoolBusy     *prometheus.GaugeVec
	WorkerPoolQueued   *prometheus.GaugeVec
	WorkerPoolCapacity *prometheus.GaugeVec
	WorkerDeaths       *prometheus.CounterVec
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry bound to prometheus.DefaultRegisterer,
// creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
// Registering twice against the same registerer panics; share the returned
// Registry between pools instead, they are told apart by the pool_name label.
func NewRegistry(reg prometheus.Registerer) *Registry {
	cfg := DefaultConfig()
	cfg.Registry = reg
	return NewRegistryWithConfig(cfg)
}

// NewRegistryWithConfig creates a registry honouring the namespace and
// constant labels of cfg.
func NewRegistryWithConfig(cfg Config) *Registry {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(cfg.Labels) > 0 {
		reg = prometheus.WrapRegistererWith(cfg.Labels, reg)
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}

	factory := promauto.With(reg)
	poolLabel := []string{"pool_name"}

	return &Registry{
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks accepted into the queue",
			},
			poolLabel,
		),

		SubmitsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "submits_rejected_total",
				Help:      "Total number of submissions that did not enqueue a task",
			},
			[]string{"pool_name", "reason"},
		),

		BackpressureEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "backpressure_events_total",
				Help:      "Total number of submissions that found the queue full",
			},
			poolLabel,
		),

		SubmitWaitDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "submit_wait_seconds",
				Help:      "Time submitters spent blocked on a full queue",
				Buckets:   prometheus.DefBuckets,
			},
			poolLabel,
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks that delivered a result",
			},
			poolLabel,
		),

		TasksPanicked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "tasks_panicked_total",
				Help:      "Total number of tasks whose processing function panicked",
			},
			poolLabel,
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "task_duration_seconds",
				Help:      "Time spent in the processing function",
				Buckets:   prometheus.DefBuckets,
			},
			poolLabel,
		),

		QueueWaitDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "queue_wait_seconds",
				Help:      "Time tasks spent queued before a worker picked them up",
				Buckets:   prometheus.DefBuckets,
			},
			poolLabel,
		),

		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Configured number of workers",
			},
			poolLabel,
		),

		WorkerPoolLive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "live_workers",
				Help:      "Number of workers still running",
			},
			poolLabel,
		),

		WorkerPoolBusy: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "busy_workers",
				Help:      "Number of workers currently executing a task",
			},
			poolLabel,
		),

		WorkerPoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "queued_tasks",
				Help:      "Number of queued tasks",
			},
			poolLabel,
		),

		WorkerPoolCapacity: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "queue_capacity",
				Help:      "Maximum number of queued tasks",
			},
			poolLabel,
		),

		WorkerDeaths: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "worker_deaths_total",
				Help:      "Total number of workers terminated by a panicking task",
			},
			poolLabel,
		),
	}
}
