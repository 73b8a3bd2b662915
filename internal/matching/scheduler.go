package matching

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lthibault/jitterbug/v2"
	"github.com/nichehire/nichehire/pkg/metrics"
	"go.uber.org/zap"
)

// CycleRunner runs one matching cycle to completion.
type CycleRunner interface {
	Run(ctx context.Context) (Report, error)
}

// Scheduler drives the matching cycle on a jittered interval. Cycles never
// overlap: a tick arriving while a cycle is still in flight is skipped.
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration
	running  atomic.Bool
}

func NewScheduler(runner CycleRunner, interval time.Duration) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled. An in-flight cycle finishes before Run
// returns; aborting mid-dispatch would just widen the at-least-once window
// for nothing.
func (s *Scheduler) Run(ctx context.Context) {
	log := zap.S().Named("scheduler")
	log.Infof("matching scheduler started, interval %s", s.interval)
	defer log.Info("matching scheduler stopped")

	ticker := jitterbug.New(s.interval, &jitterbug.Norm{Stdev: 30 * time.Millisecond, Mean: 0})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.Tick(ctx)
	}
}

// Tick runs one cycle unless another is already in flight, in which case it
// reports false. Exported so operators and tests can trigger a cycle without
// waiting on the ticker.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		metrics.IncreaseMatchingCyclesSkipped()
		zap.S().Named("scheduler").Warn("previous matching cycle still running, tick skipped")
		return false
	}
	defer s.running.Store(false)

	// A cycle, once started, runs to completion even if ctx is cancelled
	// between jobs; a half-notified job would simply be retried next cycle.
	report, err := s.runner.Run(context.WithoutCancel(ctx))
	if err != nil {
		zap.S().Named("scheduler").Errorf("matching cycle failed: %v", err)
		return true
	}

	zap.S().Named("scheduler").Infof("matching cycle done: %d jobs, %d sent, %d failed",
		report.JobsProcessed, report.NotificationsSent, report.NotificationFailures)
	return true
}
