package scheduler

import (
	"context"
	"fmt"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// JobRunner runs a named drift-correction job.
type JobRunner interface {
	Run(ctx context.Context, name entities.JobName) (entities.JobReport, error)
}

// Scheduler fires jobs on cron expressions evaluated in a fixed timezone.
// Runs of the same job may overlap; jobs are idempotent and rely on
// last-write-wins status updates rather than mutual exclusion.
type Scheduler struct {
	cron    *cron.Cron
	runner  JobRunner
	timeout time.Duration
	loc     *time.Location
	log     zerolog.Logger
}

func New(runner JobRunner, loc *time.Location, timeout time.Duration) *Scheduler {
	log := logger.WithComponent("jobs.scheduler")
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cl)),
		),
		runner:  runner,
		timeout: timeout,
		loc:     loc,
		log:     log,
	}
}

// Register schedules name on a standard five-field cron spec.
func (s *Scheduler) Register(name entities.JobName, spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.fire(name) }); err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.log.Info().Str("job", string(name)).Str("cron", spec).Msg("job scheduled")
	return nil
}

func (s *Scheduler) fire(name entities.JobName) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	report, err := s.runner.Run(ctx, name)
	if err != nil {
		s.log.Error().Err(err).Str("job", string(name)).Msg("scheduled run failed")
		return
	}
	s.log.Info().Str("job", string(name)).Int("processed", report.Processed).Int("failed", report.Failed).Msg("scheduled run finished")
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts new ticks and waits for running jobs or ctx expiry.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NextRuns lists the fire time after now of every registered job, in
// registration order.
func (s *Scheduler) NextRuns(now time.Time) []time.Time {
	entries := s.cron.Entries()
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Schedule.Next(now.In(s.loc)))
	}
	return out
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
