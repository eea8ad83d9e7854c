package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/kirkbot2/speedaudit/internal/config"
	"github.com/kirkbot2/speedaudit/internal/domain/audit"
	"github.com/kirkbot2/speedaudit/internal/pkg/logger"
)

// Scheduler runs recurring audits of the configured targets on a cron
// schedule. A failing target is logged and skipped so one slow site never
// blocks the rest of the tick.
type Scheduler struct {
	service  audit.Service
	schedule string
	targets  []string
	cron     *cron.Cron
	logger   *logger.Logger
}

// NewScheduler creates a scheduler from the audit configuration. An empty
// schedule disables it.
func NewScheduler(service audit.Service, cfg config.AuditConfig, log *logger.Logger) *Scheduler {
	return &Scheduler{
		service:  service,
		schedule: cfg.Schedule,
		targets:  cfg.Targets,
		logger:   log,
	}
}

// Start validates the schedule and begins ticking. It returns immediately;
// audits run on the cron goroutine.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Debug("audit scheduler disabled, no schedule configured")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.runAll); err != nil {
		return fmt.Errorf("failed to register audit schedule: %w", err)
	}
	s.cron.Start()

	s.logger.WithFields(map[string]interface{}{
		"schedule": s.schedule,
		"targets":  len(s.targets),
	}).Info("audit scheduler started")

	return nil
}

// Stop halts the schedule and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) runAll() {
	ctx := context.Background()

	for _, target := range s.targets {
		if _, err := s.service.RunAudit(ctx, audit.RunRequest{Target: target}); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"target": target,
			}).WithError(err).Warn("scheduled audit failed")
		}
	}
}
