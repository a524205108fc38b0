package workerpool

import (
	"time"

	"github.com/vnykmshr/boundpool/pkg/metrics"
)

// poolMetrics records pool events into a metrics.Registry. The zero value,
// with a nil registry, records nothing.
type poolMetrics struct {
	reg  *metrics.Registry
	name string
}

func (m poolMetrics) enabled() bool {
	return m.reg != nil
}

func (m poolMetrics) started(workers, capacity int) {
	if !m.enabled() {
		return
	}
	m.reg.WorkerPoolSize.WithLabelValues(m.name).Set(float64(workers))
	m.reg.WorkerPoolLive.WithLabelValues(m.name).Set(float64(workers))
	m.reg.WorkerPoolCapacity.WithLabelValues(m.name).Set(float64(capacity))
	m.reg.WorkerPoolBusy.WithLabelValues(m.name).Set(0)
	m.reg.WorkerPoolQueued.WithLabelValues(m.name).Set(0)
}

func (m poolMetrics) submitted() {
	if !m.enabled() {
		return
	}
	m.reg.TasksSubmitted.WithLabelValues(m.name).Inc()
	m.reg.WorkerPoolQueued.WithLabelValues(m.name).Inc()
}

func (m poolMetrics) rejected(reason string) {
	if !m.enabled() {
		return
	}
	m.reg.SubmitsRejected.WithLabelValues(m.name, reason).Inc()
}

func (m poolMetrics) backpressure() {
	if !m.enabled() {
		return
	}
	m.reg.BackpressureEvents.WithLabelValues(m.name).Inc()
}

func (m poolMetrics) submitWait(d time.Duration) {
	if !m.enabled() {
		return
	}
	m.reg.SubmitWaitDuration.WithLabelValues(m.name).Observe(d.Seconds())
}

// Busy and queued gauges move by Inc/Dec; concurrent workers would race on Set.
func (m poolMetrics) taskStarted(queueWait time.Duration) {
	if !m.enabled() {
		return
	}
	m.reg.QueueWaitDuration.WithLabelValues(m.name).Observe(queueWait.Seconds())
	m.reg.WorkerPoolQueued.WithLabelValues(m.name).Dec()
	m.reg.WorkerPoolBusy.WithLabelValues(m.name).Inc()
}

func (m poolMetrics) taskFinished(d time.Duration, panicked bool) {
	if !m.enabled() {
		return
	}
	m.reg.TaskExecutionDuration.WithLabelValues(m.name).Observe(d.Seconds())
	if panicked {
		m.reg.TasksPanicked.WithLabelValues(m.name).Inc()
	} else {
		m.reg.TasksCompleted.WithLabelValues(m.name).Inc()
	}
	m.reg.WorkerPoolBusy.WithLabelValues(m.name).Dec()
}

func (m poolMetrics) workerExited(live int, died bool) {
	if !m.enabled() {
		return
	}
	m.reg.WorkerPoolLive.WithLabelValues(m.name).Set(float64(live))
	if died {
		m.reg.WorkerDeaths.WithLabelValues(m.name).Inc()
	}
}

func (m poolMetrics) drained() {
	if !m.enabled() {
		return
	}
	m.reg.WorkerPoolQueued.WithLabelValues(m.name).Set(0)
}
