// Package schedule runs a job on a cron expression until cancelled.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled execution. Errors are logged, never fatal.
type Job func(ctx context.Context) error

type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	entries []cron.EntryID
	logger  *slog.Logger
}

func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		// A slow run must not overlap the next tick.
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}
}

// Add registers job under a standard 5-field cron expression or a
// descriptor such as @daily.
func (s *Scheduler) Add(ctx context.Context, name, spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, func() {
		s.logger.Info("cron fired", "job", name)
		if err := job(ctx); err != nil {
			s.logger.Error("scheduled job failed", "job", name, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid schedule %q: %w", spec, err)
	}

	s.entries = append(s.entries, id)
	s.logger.Info("job registered", "job", name, "schedule", spec)
	return nil
}

func (s *Scheduler) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Start runs the scheduler and blocks until ctx is cancelled. Running jobs
// are allowed to finish.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron.Start()
	s.logger.Info("scheduler started")

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}
