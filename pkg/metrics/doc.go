// Package metrics provides Prometheus instrumentation for boundpool worker pools.
//
// A Registry groups the collectors a pool updates as tasks move through it.
// Pools opt in by setting workerpool.Config.Metrics; a nil registry disables
// collection entirely.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.NewRegistry(reg)
//
//	pool, err := workerpool.NewWithConfig(workerpool.Config[int, int]{
//		Name:        "resize",
//		WorkerCount: 4,
//		Metrics:     m,
//	}, resize)
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # Available Metrics
//
//   - boundpool_workerpool_tasks_submitted_total
//   - boundpool_workerpool_submits_rejected_total{reason}
//   - boundpool_workerpool_backpressure_events_total
//   - boundpool_workerpool_submit_wait_seconds
//   - boundpool_workerpool_tasks_completed_total
//   - boundpool_workerpool_tasks_panicked_total
//   - boundpool_workerpool_task_duration_seconds
//   - boundpool_workerpool_queue_wait_seconds
//   - boundpool_workerpool_size
//   - boundpool_workerpool_live_workers
//   - boundpool_workerpool_busy_workers
//   - boundpool_workerpool_queued_tasks
//   - boundpool_workerpool_queue_capacity
//   - boundpool_workerpool_worker_deaths_total
//
// Every metric carries a pool_name label. Config.Namespace replaces the
// "boundpool" prefix and Config.Labels adds constant labels.
package metrics
