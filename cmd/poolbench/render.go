package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/vnykmshr/boundpool/internal/config"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

func renderResults(w io.Writer, cfg *config.Config, results []runResult, colored bool) {
	if !colored {
		bold.DisableColor()
		green.DisableColor()
		red.DisableColor()
	}

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintf(w, "Workload %s: %d tasks, complexity %d, %d producer(s)\n",
		cfg.Workload, cfg.Tasks, cfg.Complexity, cfg.Producers)

	table := tablewriter.NewWriter(w)
	table.Header("Workers", "Tasks", "Wall", "Tasks/sec", "Speedup", "P50", "P95", "P99", "Panics")

	best := fastest(results)
	for i, r := range results {
		speedup := fmt.Sprintf("%.2fx", r.Speedup)
		if i == best && len(results) > 1 {
			speedup = green.Sprint(speedup)
		}
		panics := strconv.FormatInt(r.Panicked, 10)
		if r.Panicked > 0 {
			panics = red.Sprint(panics)
		}

		_ = table.Append(
			strconv.Itoa(r.Workers),
			strconv.Itoa(r.Tasks),
			r.Wall.Round(time.Millisecond).String(),
			strconv.Itoa(int(r.Throughput)),
			speedup,
			r.P50.Round(time.Microsecond).String(),
			r.P95.Round(time.Microsecond).String(),
			r.P99.Round(time.Microsecond).String(),
			panics,
		)
	}
	_ = table.Render()

	if best >= 0 {
		_, _ = fmt.Fprintf(w, "Best: %d workers at %d tasks/sec\n",
			results[best].Workers, int(results[best].Throughput))
	}
}

// fastest returns the index of the highest-throughput run, or -1.
func fastest(results []runResult) int {
	best := -1
	for i, r := range results {
		if best < 0 || r.Throughput > results[best].Throughput {
			best = i
		}
	}
	return best
}
