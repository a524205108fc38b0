// Command poolbench drives CPU-bound workloads through a bounded worker pool
// across a sweep of worker counts and reports throughput and speedup.
//
//	poolbench -workers 1,2,4,8 -tasks 5000 -workload primes
//	poolbench -schedule "@every 5m" -metrics-addr :9090
//
// Settings come from POOLBENCH_* environment variables (optionally read from
// a .env file); flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vnykmshr/boundpool/internal/config"
	"github.com/vnykmshr/boundpool/pkg/metrics"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.WithError(err).Fatal("poolbench failed")
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("poolbench", flag.ContinueOnError)
	envFile := fs.String("env", ".env", "dotenv file to load before reading the environment")
	workers := fs.String("workers", "", "comma-separated worker counts to sweep")
	tasks := fs.Int("tasks", 0, "tasks per run")
	complexity := fs.Int("complexity", 0, "work per task")
	producers := fs.Int("producers", 0, "concurrent submitters; 1 uses Map")
	workload := fs.String("workload", "", "workload: primes, hash or spin")
	queue := fs.Int("queue", -1, "queue capacity; 0 means 2 x workers")
	schedule := fs.String("schedule", "", "cron spec to repeat the sweep on, e.g. \"@every 10m\"")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
	pin := fs.Bool("pin", false, "pin workers to CPUs")
	ci := fs.Bool("ci", false, "plain output without progress bar or colors")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.WithError(err).Warn("could not read env file, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers, flagErr = config.ParseInts("workers", *workers)
		case "tasks":
			cfg.Tasks = *tasks
		case "complexity":
			cfg.Complexity = *complexity
		case "producers":
			cfg.Producers = *producers
		case "workload":
			cfg.Workload = *workload
		case "queue":
			cfg.QueueCapacity = *queue
		case "schedule":
			cfg.Schedule = *schedule
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "pin":
			cfg.PinWorkers = *pin
		}
	})
	if flagErr != nil {
		return flagErr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())
	reg := metrics.NewRegistry(promReg)

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, promReg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	b := &bench{
		cfg:     cfg,
		metrics: reg,
		out:     os.Stdout,
		plain:   *ci,
	}

	if cfg.Schedule == "" {
		_, err := b.sweep(ctx)
		return err
	}
	return soak(ctx, cfg.Schedule, b)
}

func setupLogging(cfg *config.Config) {
	log.SetLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func serveMetrics(addr string, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Infof("serving metrics on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	return srv
}
