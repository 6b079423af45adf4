// Package sweepers runs periodic in-process housekeeping such as expiring
// idle quotation drafts and dropping idle rate limiters.
package sweepers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Task is one unit of housekeeping. Sweep returns how many entries it removed.
type Task interface {
	Name() string
	Sweep(ctx context.Context) (int, error)
}

// TaskFunc adapts a function to Task
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) (int, error)
}

func (f TaskFunc) Name() string { return f.TaskName }

func (f TaskFunc) Sweep(ctx context.Context) (int, error) { return f.Fn(ctx) }

// Sweeper periodically runs a Task
type Sweeper struct {
	task     Task
	logger   zerolog.Logger
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewSweeper creates a sweeper for task
func NewSweeper(task Task, logger zerolog.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		task:     task,
		logger:   logger.With().Str("component", "sweeper").Str("task", task.Name()).Logger(),
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start runs the task every interval until ctx is done or Stop is called
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("Starting sweeper")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Sweeper stopping (context cancelled)")
			return
		case <-s.stopChan:
			s.logger.Info().Msg("Sweeper stopping (stop signal)")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// Stop signals the sweeper to stop. Safe to call more than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// RunOnce executes the task a single time and logs the outcome
func (s *Sweeper) RunOnce(ctx context.Context) int {
	removed, err := s.task.Sweep(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Sweep failed")
		return removed
	}
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("Sweep completed")
	}
	return removed
}
