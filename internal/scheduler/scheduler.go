package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher is anything that can re-run its fetches, typically a dashboard.Session.
type Refresher interface {
	Refresh()
}

// Scheduler triggers periodic refreshes.
type Scheduler struct {
	Cron   *cron.Cron
	logger *slog.Logger
}

// New registers target on spec, a standard five-field cron expression or a
// descriptor such as "@every 30s".
func New(spec string, target Refresher, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		logger.Debug("scheduled refresh")
		target.Refresh()
	}); err != nil {
		return nil, fmt.Errorf("register refresh %q: %w", spec, err)
	}
	return &Scheduler{Cron: c, logger: logger}, nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started", "entries", len(s.Cron.Entries()))
}

// Stop stops the scheduler and waits for a running refresh call to return.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
