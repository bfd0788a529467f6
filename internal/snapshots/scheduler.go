package snapshots

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/verdict-ml/verdict/pkg/lifecycle"
)

// Scheduler creates snapshots on a standard five-field cron schedule
// (minute hour day-of-month month day-of-week). An empty schedule
// disables scheduled runs without disabling on-demand snapshots.
type Scheduler struct {
	sys      System
	schedule string
	logger   *slog.Logger
}

// NewScheduler creates a Scheduler driving the given system.
func NewScheduler(sys System, schedule string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sys:      sys,
		schedule: strings.TrimSpace(schedule),
		logger:   logger.With("system", "snapshots"),
	}
}

// Start validates the schedule and registers the run loop with the
// lifecycle coordinator. The loop exits when the coordinator's context
// is cancelled.
func (s *Scheduler) Start(lc *lifecycle.Coordinator) error {
	if s.schedule == "" {
		s.logger.Info("scheduled snapshots disabled, schedule not set")
		return nil
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(s.schedule)
	if err != nil {
		return fmt.Errorf("parse snapshot schedule %q: %w", s.schedule, err)
	}

	lc.OnStartup(func() {
		s.logger.Info("snapshots scheduled", "cron", s.schedule)
		go s.run(lc, sched)
	})
	return nil
}

func (s *Scheduler) run(lc *lifecycle.Coordinator, sched cron.Schedule) {
	for {
		next := sched.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-lc.Context().Done():
			timer.Stop()
			return
		case <-timer.C:
			if snap, err := s.sys.Create(lc.Context()); err != nil {
				s.logger.Error("scheduled snapshot failed", "error", err)
			} else {
				s.logger.Info("scheduled snapshot complete", "id", snap.ID, "name", snap.Name)
			}
		}
	}
}
