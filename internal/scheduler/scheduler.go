// ABOUTME: Periodic trigger for background fleet syncs built on robfig/cron
// ABOUTME: Overlapping runs are skipped; Stop waits for an in-flight run to finish

package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule refreshes all subscriptions hourly.
const DefaultSchedule = "@every 1h"

// Trigger starts and stops a recurring background job.
type Trigger interface {
	Start()
	// Stop halts scheduling and returns a context that is done once any
	// in-flight run has completed.
	Stop() context.Context
}

// CronTrigger implements Trigger on a cron schedule.
type CronTrigger struct {
	cron *cron.Cron
}

// NewCronTrigger wires job to run on the given cron schedule (standard
// expressions plus descriptors like "@every 30m"). If a run is still in
// progress when the next tick fires, that tick is skipped.
func NewCronTrigger(schedule string, job func()) (*CronTrigger, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, job); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	return &CronTrigger{cron: c}, nil
}

// Start begins scheduling in its own goroutine.
func (t *CronTrigger) Start() {
	t.cron.Start()
}

// Stop halts scheduling. The returned context is done when the running
// job, if any, finishes.
func (t *CronTrigger) Stop() context.Context {
	return t.cron.Stop()
}
