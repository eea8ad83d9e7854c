package audit

import "context"

// Repository persists completed audit results.
type Repository interface {
	Create(ctx context.Context, res *Result) (int64, error)
	GetByID(ctx context.Context, id int64) (*Result, error)
	List(ctx context.Context, filter Filter) ([]*Result, error)
	LatestByTarget(ctx context.Context, target string) (*Result, error)
}
