package automation

import (
	"context"
	"geg-automation/internal/components/assert"
	"geg-automation/internal/components/chrono"
	"geg-automation/internal/components/db"
	"geg-automation/internal/components/telemetry"
	"sync"
	"time"
)

const (
	report_scheduler_catch_up = "scheduler.catch-up"
	report_scheduler_run      = "scheduler.run"
)

// DefaultSchedule runs every day at 16:20.
const DefaultSchedule = "20 16 * * *"

// DefaultGrace is how late a missed activation may still be caught up.
const DefaultGrace = time.Hour

// RunAllAPI runs every account.
//
// note: fault injection point
type RunAllAPI interface {
	RunAll(ctx context.Context) ([]Result, error)
}

type Scheduler struct {
	runner RunAllAPI
	store  db.Store
	cron   chrono.CronAPI
	time   chrono.TimeAPI
	spec   string
	grace  time.Duration
	tel    telemetry.API

	catchUp *sync.WaitGroup
}

func NewScheduler(
	runner RunAllAPI,
	store db.Store,
	cron chrono.CronAPI,
	time chrono.TimeAPI,
	spec string,
	grace time.Duration,
	tel telemetry.API,
) Scheduler {
	assert.NotNil(runner)
	assert.NotNil(cron)
	assert.NotNil(time)
	assert.NotNil(tel)
	assert.NotEmptyStr(spec)

	return Scheduler{
		runner: runner,
		store:  store,
		cron:   cron,
		time:   time,
		spec:   spec,
		grace:  grace,
		tel:    telemetry.NewScopedAPI("scheduler", tel),

		catchUp: &sync.WaitGroup{},
	}
}

func (s Scheduler) runAll(ctx context.Context) {
	results, err := s.runner.RunAll(ctx)
	if err != nil {
		s.tel.ReportBroken(report_scheduler_run, err)
	}
	succeeded := 0
	for _, result := range results {
		if result.Err == nil {
			succeeded++
		}
	}
	s.tel.ReportDebug("scheduled run finished", "accounts", len(results), "succeeded", succeeded)
}

// MissedActivation reports whether the latest activation of the schedule
// happened within the grace period and no run started since.
func (s Scheduler) MissedActivation(ctx context.Context) (bool, error) {
	now := s.time.Now()
	at, ok, err := chrono.PreviousActivation(s.spec, now, s.grace)
	if err != nil || !ok {
		return false, err
	}

	last, ran, err := s.store.LastRunStart(ctx)
	if err != nil {
		return false, err
	}
	// the run log keeps whole seconds
	if ran && !last.Before(at.Truncate(time.Second)) {
		return false, nil
	}
	return true, nil
}

// Start registers the cron job and, if an activation was missed, runs
// immediately in the background. Runs use `ctx`, which should outlive the
// scheduler.
func (s Scheduler) Start(ctx context.Context) error {
	err := s.cron.Cron(s.spec, func() {
		s.runAll(ctx)
	})
	if err != nil {
		return err
	}

	missed, err := s.MissedActivation(ctx)
	if err != nil {
		s.tel.ReportWarning(report_scheduler_catch_up, err)
		return nil
	}
	if missed {
		s.tel.ReportDebug("catching up missed activation", "spec", s.spec)
		s.catchUp.Add(1)
		go func() {
			defer s.catchUp.Done()
			s.runAll(ctx)
		}()
	}
	return nil
}

// Stop stops the cron job, the returned context is done once the running
// job and any catch-up run complete.
func (s Scheduler) Stop() context.Context {
	cronDone := s.cron.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		<-cronDone.Done()
		s.catchUp.Wait()
	}()
	return ctx
}
