package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Pruner deletes files older than maxAge and reports how many were removed.
type Pruner interface {
	Prune(maxAge time.Duration) (int, error)
}

// Scheduler periodically removes stale forecast charts.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	maxAge    time.Duration
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(pruner Pruner, interval, maxAge time.Duration, logger *zap.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		pruner:    pruner,
		maxAge:    maxAge,
		interval:  interval,
		logger:    logger.With(zap.String("component", "scheduler")),
	}
}

// Start schedules the chart janitor and starts the underlying scheduler. The
// first run happens immediately.
func (s *Scheduler) Start() error {
	if s.maxAge <= 0 {
		s.logger.Info("chart pruning disabled")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.prune)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("chart janitor started", zap.Int("every_minutes", minutes), zap.Duration("max_age", s.maxAge))
	return nil
}

func (s *Scheduler) prune() {
	removed, err := s.pruner.Prune(s.maxAge)
	if err != nil {
		s.logger.Warn("chart pruning failed", zap.Int("removed", removed), zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("pruned stale charts", zap.Int("removed", removed))
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
