package audit

import (
	"context"
	"time"
)

// RunRequest describes one audit invocation.
type RunRequest struct {
	Target      string
	Timeout     time.Duration // zero means the engine default
	Competitors []string
}

// Service runs audits and exposes stored history.
type Service interface {
	RunAudit(ctx context.Context, req RunRequest) (*Result, error)
	GetAudit(ctx context.Context, id int64) (*Result, error)
	History(ctx context.Context, filter Filter) ([]*Result, error)
	LatestByTarget(ctx context.Context, target string) (*Result, error)
}
