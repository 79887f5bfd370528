package integrity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs integrity sweeps on a cron schedule.
type Scheduler struct {
	sweeper  *Sweeper
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a scheduler that runs the sweeper on the given
// cron schedule (standard 5-field syntax).
func NewScheduler(sweeper *Sweeper, schedule string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "audit.integrity.scheduler"),
	}
}

// Start begins scheduled sweeps. The scheduler stops when the context is
// cancelled. An empty schedule disables scheduling.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule integrity sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("integrity scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) runSweep(ctx context.Context) {
	result, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.logger.Error("scheduled integrity sweep failed", "error", err)
		return
	}
	if !result.Valid {
		s.logger.Error("scheduled integrity sweep found broken chain",
			"broken_index", result.Verification.FirstBrokenIndex,
		)
	}
}

// Stop stops the scheduler and waits for any running sweep to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("integrity scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled sweep time, or nil when nothing is
// scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
