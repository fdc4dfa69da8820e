package scheduler

import (
	"fmt"

	"github.com/leadbank/crm-service/internal/config"
	"github.com/leadbank/crm-service/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the periodic background jobs
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// New registers the daily follow-up digest and returns a stopped scheduler
func New(cfg *config.Config, svc *service.Service, log *logrus.Logger) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(cfg.DigestSchedule, func() {
		if err := svc.SendFollowUpDigests(); err != nil {
			log.Errorf("Follow-up digest run failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", cfg.DigestSchedule, err)
	}
	return &Scheduler{cron: c, log: log}, nil
}

// Start begins running jobs in their own goroutines
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop cancels future runs; running jobs finish
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
