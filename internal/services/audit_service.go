package services

import (
	"context"
	"time"

	"github.com/kirkbot2/speedaudit/internal/domain/audit"
	"github.com/kirkbot2/speedaudit/internal/pkg/logger"
	"github.com/kirkbot2/speedaudit/internal/pkg/metrics"
)

// Runner is the audit engine surface the service depends on.
type Runner interface {
	Run(ctx context.Context, target string) (*audit.Result, error)
	CompareCompetitors(ctx context.Context, urls []string) []audit.CompetitorScore
}

// AuditService implements audit.Service: it runs the engine, persists the
// result, and records metrics. The engine itself stays persistence-free.
type AuditService struct {
	runner Runner
	repo   audit.Repository
	logger *logger.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(runner Runner, repo audit.Repository, log *logger.Logger) audit.Service {
	return &AuditService{
		runner: runner,
		repo:   repo,
		logger: log,
	}
}

// RunAudit performs one audit, stores the result, and returns it with its
// assigned ID. Competitor failures are tolerated inside the comparison;
// a primary-target failure aborts the call.
func (s *AuditService) RunAudit(ctx context.Context, req audit.RunRequest) (*audit.Result, error) {
	start := time.Now()

	runCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	res, err := s.runner.Run(runCtx, req.Target)
	if err != nil {
		metrics.RecordAudit("error", time.Since(start))
		s.logger.WithFields(map[string]interface{}{
			"target": req.Target,
		}).WithError(err).Warn("audit failed")
		return nil, err
	}

	if len(req.Competitors) > 0 {
		res.Competitive = s.runner.CompareCompetitors(ctx, req.Competitors)
	}

	id, err := s.repo.Create(ctx, res)
	if err != nil {
		return nil, err
	}
	res.ID = id

	metrics.RecordAudit("success", time.Since(start))
	metrics.SetPageScore(req.Target, res.Score)
	metrics.SetPageLoadTime(req.Target, res.Metrics.LoadTimeMs)

	s.logger.WithFields(map[string]interface{}{
		"target": req.Target,
		"score":  res.Score,
		"id":     id,
	}).Info("audit stored")

	return res, nil
}

// GetAudit returns one stored audit by ID.
func (s *AuditService) GetAudit(ctx context.Context, id int64) (*audit.Result, error) {
	return s.repo.GetByID(ctx, id)
}

// History lists stored audits matching the filter, newest first.
func (s *AuditService) History(ctx context.Context, filter audit.Filter) ([]*audit.Result, error) {
	return s.repo.List(ctx, filter)
}

// LatestByTarget returns the most recent stored audit for a target.
func (s *AuditService) LatestByTarget(ctx context.Context, target string) (*audit.Result, error) {
	return s.repo.LatestByTarget(ctx, target)
}
