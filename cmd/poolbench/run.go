package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vnykmshr/boundpool/internal/config"
	"github.com/vnykmshr/boundpool/internal/workload"
	"github.com/vnykmshr/boundpool/pkg/metrics"
	"github.com/vnykmshr/boundpool/pkg/workerpool"
)

// bench runs sweeps for one configuration.
type bench struct {
	cfg     *config.Config
	metrics *metrics.Registry
	out     io.Writer
	plain   bool
}

// sample is what a worker returns for one task.
type sample struct {
	value uint64
	took  time.Duration
}

// runResult summarises one pool size.
type runResult struct {
	Workers    int
	Tasks      int
	Wall       time.Duration
	Throughput float64
	Speedup    float64
	Panicked   int64
	P50        time.Duration
	P95        time.Duration
	P99        time.Duration
	Checksum   uint64
}

// sweep runs the workload once per configured worker count, renders the
// results and returns them.
func (b *bench) sweep(ctx context.Context) ([]runResult, error) {
	runID := uuid.NewString()
	logger := log.WithFields(log.Fields{
		"run":      runID[:8],
		"workload": b.cfg.Workload,
	})

	fn, err := workload.Lookup(b.cfg.Workload, b.cfg.Complexity)
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if !b.plain {
		bar = progressbar.NewOptions(len(b.cfg.Workers),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Sweeping worker counts"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	logger.WithField("sweep", b.cfg.Workers).Info("benchmark started")

	results := make([]runResult, 0, len(b.cfg.Workers))
	for _, workers := range b.cfg.Workers {
		if bar != nil {
			bar.Describe(fmt.Sprintf("workers=%d", workers))
		}

		res, err := b.runOnce(ctx, runID, workers, fn)
		if err != nil {
			return results, err
		}
		if len(results) > 0 && res.Checksum != results[0].Checksum {
			logger.WithFields(log.Fields{
				"workers":  workers,
				"checksum": res.Checksum,
				"expected": results[0].Checksum,
			}).Error("result checksum differs between pool sizes")
		}
		results = append(results, res)

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	computeSpeedup(results)
	renderResults(b.out, b.cfg, results, !b.plain)
	logger.Info("benchmark finished")
	return results, nil
}

// runOnce pushes cfg.Tasks ids through a pool of the given size.
func (b *bench) runOnce(ctx context.Context, runID string, workers int, fn workload.Func) (runResult, error) {
	logger := log.WithFields(log.Fields{"run": runID[:8], "workers": workers})

	pool, err := workerpool.NewWithConfig(workerpool.Config[int, sample]{
		Name:          fmt.Sprintf("bench-w%d", workers),
		WorkerCount:   workers,
		QueueCapacity: b.cfg.QueueCapacity,
		PinWorkers:    b.cfg.PinWorkers,
		Logger:        logger,
		Metrics:       b.metrics,
	}, timed(fn))
	if err != nil {
		return runResult{}, err
	}
	defer pool.Shutdown()

	ids := make([]int, b.cfg.Tasks)
	for i := range ids {
		ids[i] = i
	}

	start := time.Now()
	var samples []sample
	if b.cfg.Producers <= 1 {
		samples, err = pool.MapWithContext(ctx, ids)
	} else {
		samples, err = produce(ctx, pool, ids, b.cfg.Producers)
	}
	wall := time.Since(start)
	if err != nil {
		return runResult{}, fmt.Errorf("workers=%d: %w", workers, err)
	}

	durations := make([]time.Duration, len(samples))
	var checksum uint64
	for i, s := range samples {
		durations[i] = s.took
		checksum += s.value * uint64(i+1)
	}
	p50, p95, p99 := workload.Percentiles(durations)

	res := runResult{
		Workers:    workers,
		Tasks:      len(ids),
		Wall:       wall,
		Throughput: float64(len(ids)) / wall.Seconds(),
		Panicked:   pool.TotalPanicked(),
		P50:        p50,
		P95:        p95,
		P99:        p99,
		Checksum:   checksum,
	}
	logger.WithFields(log.Fields{
		"wall":       wall.Round(time.Millisecond),
		"throughput": int(res.Throughput),
	}).Debug("run finished")
	return res, nil
}

// produce submits ids from several goroutines, each owning an interleaved
// share of the indices, then collects the outputs positionally.
func produce(ctx context.Context, pool *workerpool.Pool[int, sample], ids []int, producers int) ([]sample, error) {
	receivers := make([]*workerpool.Receiver[sample], len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for p := 0; p < producers; p++ {
		g.Go(func() error {
			for i := p; i < len(ids); i += producers {
				rx, err := pool.SubmitWithContext(gctx, ids[i])
				if err != nil {
					return &workerpool.TaskError{Index: i, Err: err}
				}
				receivers[i] = rx
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]sample, len(ids))
	for i, rx := range receivers {
		s, err := rx.RecvContext(ctx)
		if err != nil {
			return nil, &workerpool.TaskError{Index: i, Err: err}
		}
		out[i] = s
	}
	return out, nil
}

func timed(fn workload.Func) workerpool.ProcessFunc[int, sample] {
	return func(id int) sample {
		start := time.Now()
		v := fn(id)
		return sample{value: v, took: time.Since(start)}
	}
}

// computeSpeedup measures every run against the first one in the sweep,
// normally the single-worker run.
func computeSpeedup(results []runResult) {
	if len(results) == 0 {
		return
	}
	base := results[0].Wall.Seconds()
	for i := range results {
		if results[i].Wall > 0 {
			results[i].Speedup = base / results[i].Wall.Seconds()
		}
	}
}
