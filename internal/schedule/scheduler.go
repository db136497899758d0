package schedule

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Task is a named background maintenance routine, such as the embedding sync
// that keeps the vector index current with paper edits.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler drives Tasks on standard five-field cron specs at minute
// resolution. All runs share the context handed to Start, so server shutdown
// cancels in-flight work.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

func New() *Scheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return &Scheduler{cron: cron.New(cron.WithParser(parser))}
}

func (s *Scheduler) Schedule(spec string, task Task) error {
	if _, err := s.cron.AddFunc(spec, s.guard(task)); err != nil {
		return err
	}
	logutil.GetLogger(context.Background()).Info("task scheduled",
		zap.String("task", task.Name()), zap.String("spec", spec))
	return nil
}

func (s *Scheduler) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx = ctx
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	<-done.Done()
}

// guard serializes runs of one task: a tick that fires while the previous
// run is still going is skipped, not queued.
func (s *Scheduler) guard(task Task) func() {
	var busy atomic.Bool
	return func() {
		if !busy.CompareAndSwap(false, true) {
			logutil.GetLogger(context.Background()).Info("task still running, tick skipped",
				zap.String("task", task.Name()))
			return
		}
		defer busy.Store(false)

		ctx := s.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		logger := logutil.GetLogger(ctx).With(zap.String("task", task.Name()))
		start := time.Now()
		if err := task.Run(ctx); err != nil {
			logger.Error("task run failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
			return
		}
		logger.Info("task run finished", zap.Duration("duration", time.Since(start)))
	}
}
