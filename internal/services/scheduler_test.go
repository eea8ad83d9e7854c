package services

import (
	"context"
	"sync"
	"testing"

	"github.com/kirkbot2/speedaudit/internal/config"
	"github.com/kirkbot2/speedaudit/internal/domain/audit"
	apperrors "github.com/kirkbot2/speedaudit/internal/pkg/errors"
)

// recordingService counts RunAudit calls per target.
type recordingService struct {
	mu    sync.Mutex
	calls map[string]int
	errs  map[string]error
}

func (r *recordingService) RunAudit(ctx context.Context, req audit.RunRequest) (*audit.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[req.Target]++
	if err, ok := r.errs[req.Target]; ok {
		return nil, err
	}
	return &audit.Result{Target: req.Target, Score: 100}, nil
}

func (r *recordingService) GetAudit(ctx context.Context, id int64) (*audit.Result, error) {
	return nil, apperrors.NotFound("Audit")
}

func (r *recordingService) History(ctx context.Context, filter audit.Filter) ([]*audit.Result, error) {
	return nil, nil
}

func (r *recordingService) LatestByTarget(ctx context.Context, target string) (*audit.Result, error) {
	return nil, apperrors.NotFound("Audit")
}

func TestScheduler_StartValidation(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{"disabled when empty", "", false},
		{"valid standard expression", "*/5 * * * *", false},
		{"invalid expression", "not-a-schedule", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(&recordingService{}, config.AuditConfig{
				Schedule: tt.schedule,
				Targets:  []string{"https://example.com"},
			}, testLogger())

			err := s.Start()
			if (err != nil) != tt.wantErr {
				t.Errorf("Start() error = %v, wantErr %v", err, tt.wantErr)
			}
			s.Stop()
		})
	}
}

func TestScheduler_RunAllContinuesPastFailures(t *testing.T) {
	svc := &recordingService{
		errs: map[string]error{
			"https://down.example.com": apperrors.NetworkError("https://down.example.com", nil),
		},
	}

	s := NewScheduler(svc, config.AuditConfig{
		Schedule: "*/5 * * * *",
		Targets:  []string{"https://a.example.com", "https://down.example.com", "https://b.example.com"},
	}, testLogger())

	s.runAll()

	for _, target := range []string{"https://a.example.com", "https://down.example.com", "https://b.example.com"} {
		if svc.calls[target] != 1 {
			t.Errorf("calls[%s] = %d, want 1", target, svc.calls[target])
		}
	}
}
