// Package jobs runs periodic maintenance tasks on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one periodic task
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs jobs on cron specs in UTC
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	logger zerolog.Logger
}

// NewScheduler creates a stopped scheduler. Overlapping runs of the same job are skipped.
func NewScheduler(logger zerolog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Add schedules job on spec, e.g. "@every 15m" or "*/5 * * * *"
func (s *Scheduler) Add(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job.Run(s.ctx); err != nil {
			s.logger.Error().Err(err).Str("job", job.Name()).Msg("Job failed")
			return
		}
		s.logger.Debug().Str("job", job.Name()).Dur("took", time.Since(start)).Msg("Job finished")
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, job.Name(), err)
	}
	s.logger.Info().Str("job", job.Name()).Str("schedule", spec).Msg("Job scheduled")
	return nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or for ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
