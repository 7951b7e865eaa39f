package draft

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor closes idle drafts on a cron schedule so abandoned forms do not
// accumulate controllers and their in-flight work.
type Janitor struct {
	cron    *cron.Cron
	manager *Manager
	ttl     time.Duration
	logger  Logger
}

// NewJanitor creates the janitor without starting it.
func NewJanitor(manager *Manager, ttl time.Duration, logger Logger) *Janitor {
	return &Janitor{
		cron:    cron.New(),
		manager: manager,
		ttl:     ttl,
		logger:  logger,
	}
}

// Start registers the sweep on the given cron schedule and begins running.
func (j *Janitor) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, j.sweep)
	if err != nil {
		return fmt.Errorf("draft: janitor schedule %q: %w", schedule, err)
	}
	j.cron.Start()
	j.logger.Info("DraftJanitor: started (schedule=%q, ttl=%s)", schedule, j.ttl)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Janitor) sweep() {
	if n := j.manager.CloseIdle(j.ttl); n > 0 {
		j.logger.Info("DraftJanitor: expired %d idle draft(s)", n)
	}
}
