package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Specs are the standard five-field cron expressions of each job
type Specs struct {
	Recurring  string
	Rollover   string
	Allocation string
}

// Scheduler triggers the entry points on their cron schedules. A run that is
// still in progress when its next tick arrives makes that tick a no-op.
type Scheduler struct {
	cron   *cron.Cron
	runner *Runner
	log    *logrus.Logger
}

// NewScheduler creates a scheduler evaluating specs in loc
func NewScheduler(runner *Runner, log *logrus.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	logger := cron.PrintfLogger(log)
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	return &Scheduler{cron: c, runner: runner, log: log}
}

// Register adds the three jobs. An empty spec leaves that job unscheduled.
func (s *Scheduler) Register(specs Specs) error {
	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) Response
	}{
		{JobRecurring, specs.Recurring, s.runner.RecurringHandler},
		{JobRollover, specs.Rollover, func(ctx context.Context) Response { return s.runner.RolloverHandler(ctx, 0, 0) }},
		{JobAllocation, specs.Allocation, s.runner.AllocationHandler},
	}
	for _, j := range jobs {
		if j.spec == "" {
			s.log.WithField("job", j.name).Warn("No schedule configured, job disabled")
			continue
		}
		name, run := j.name, j.run
		if _, err := s.cron.AddFunc(j.spec, func() {
			resp := run(context.Background())
			s.log.WithFields(logrus.Fields{
				"job":         name,
				"status_code": resp.StatusCode,
			}).Info(resp.Body)
		}); err != nil {
			return fmt.Errorf("invalid schedule %q for %s job: %w", j.spec, j.name, err)
		}
		s.log.WithFields(logrus.Fields{"job": j.name, "spec": j.spec}).Info("Job scheduled")
	}
	return nil
}

// Entries returns the number of scheduled jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and returns a context done once running jobs finish
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
