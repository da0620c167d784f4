package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cytrico/frontdesk/internal/config"
	"github.com/cytrico/frontdesk/internal/service/alerts"
)

// Scheduler runs the periodic due-alert sweep.
type Scheduler struct {
	cron      *cron.Cron
	alertsSvc *alerts.Service
	cfg       config.AlertsConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.AlertsConfig, alertsSvc *alerts.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:      cron.New(),
		alertsSvc: alertsSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the sweep job and begins the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("sweep_schedule", s.cfg.SweepSchedule))

	_, err := s.cron.AddFunc(s.cfg.SweepSchedule, s.sweepDueAlerts)
	if err != nil {
		s.logger.Error("failed to schedule alert sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sweepDueAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.alertsSvc.Sweep(ctx); err != nil {
		s.logger.Error("due-alert sweep failed", zap.Error(err))
	}
}
