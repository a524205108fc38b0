package main

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// soak reruns the sweep on a cron schedule until ctx is cancelled. A sweep still in
// progress when the next tick fires is not doubled up.
func soak(ctx context.Context, schedule string, b *bench) error {
	logger := log.WithField("schedule", schedule)

	c := cron.New(
		cron.WithParser(cronParser),
		cron.WithLogger(cron.PrintfLogger(logger)),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))),
	)

	_, err := c.AddFunc(schedule, func() {
		if _, err := b.sweep(ctx); err != nil && ctx.Err() == nil {
			logger.WithError(err).Error("scheduled sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	logger.Info("soak mode started")
	c.Start()
	<-ctx.Done()

	logger.Info("stopping soak mode, waiting for running sweep")
	<-c.Stop().Done()
	return nil
}
