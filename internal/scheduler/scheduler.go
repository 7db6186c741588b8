// Package scheduler runs periodic background jobs such as the dataset refresh.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler wraps a cron runner. Jobs that are still running when their next
// tick arrives are skipped.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func New(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "scheduler"))
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{log}),
			cron.SkipIfStillRunning(cronLogger{log}),
		)),
		log: log,
	}
}

// AddFunc schedules fn under a standard five-field cron spec or a descriptor
// such as "@every 15m". Each run gets its own context bounded by timeout.
func (s *Scheduler) AddFunc(name, spec string, timeout time.Duration, fn func(ctx context.Context) error) error {
	if _, err := s.cron.AddJob(spec, s.job(name, timeout, fn)); err != nil {
		return fmt.Errorf("schedule %s %q: %w", name, spec, err)
	}
	s.log.Info("job_scheduled", zap.String("job", name), zap.String("spec", spec))
	return nil
}

func (s *Scheduler) job(name string, timeout time.Duration, fn func(ctx context.Context) error) cron.Job {
	return cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			s.log.Error("job_failed", zap.String("job", name), zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()))
			return
		}
		s.log.Info("job_done", zap.String("job", name),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	})
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ log *zap.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
