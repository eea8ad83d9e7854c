package testutil

import (
	"context"

	"github.com/kirkbot2/speedaudit/internal/domain/audit"
	apperrors "github.com/kirkbot2/speedaudit/internal/pkg/errors"
)

// MockAuditRepository is an in-memory implementation of audit.Repository
type MockAuditRepository struct {
	Audits      map[int64]*audit.Result
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{
		Audits: make(map[int64]*audit.Result),
		NextID: 1,
	}
}

func (m *MockAuditRepository) Create(ctx context.Context, res *audit.Result) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	id := m.NextID
	m.NextID++

	stored := *res
	stored.ID = id
	m.Audits[id] = &stored
	return id, nil
}

func (m *MockAuditRepository) GetByID(ctx context.Context, id int64) (*audit.Result, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	res, ok := m.Audits[id]
	if !ok {
		return nil, apperrors.NotFound("Audit")
	}
	return res, nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Result, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}

	var results []*audit.Result
	for _, res := range m.Audits {
		if filter.Target != "" && res.Target != filter.Target {
			continue
		}
		if filter.MinScore != nil && res.Score < *filter.MinScore {
			continue
		}
		if filter.MaxScore != nil && res.Score > *filter.MaxScore {
			continue
		}
		results = append(results, res)
		if filter.Limit > 0 && len(results) == filter.Limit {
			break
		}
	}
	return results, nil
}

func (m *MockAuditRepository) LatestByTarget(ctx context.Context, target string) (*audit.Result, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}

	var latest *audit.Result
	for _, res := range m.Audits {
		if res.Target != target {
			continue
		}
		if latest == nil || res.ObservedAt.After(latest.ObservedAt) {
			latest = res
		}
	}
	if latest == nil {
		return nil, apperrors.NotFound("Audit")
	}
	return latest, nil
}
