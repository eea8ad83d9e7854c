package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kirkbot2/speedaudit/internal/domain/audit"
	"github.com/kirkbot2/speedaudit/internal/domain/recommendation"
	apperrors "github.com/kirkbot2/speedaudit/internal/pkg/errors"
)

const defaultListLimit = 50

// AuditRepository stores completed audit results in the audits table.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates an audit repository backed by db.
func NewAuditRepository(db *sql.DB) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, res *audit.Result) (int64, error) {
	recsJSON, _ := json.Marshal(res.Recommendations)

	query := `
		INSERT INTO audits (target, observed_at, load_time_ms, ttfb_ms, body_size_bytes, status_code, score, recommendations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		res.Target, res.ObservedAt,
		res.Metrics.LoadTimeMs, res.Metrics.TimeToFirstByteMs, res.Metrics.BodySizeBytes, res.Metrics.StatusCode,
		res.Score, string(recsJSON),
	)
	if err != nil {
		return 0, apperrors.DatabaseError("Failed to store audit result", err)
	}

	return result.LastInsertId()
}

func (r *AuditRepository) GetByID(ctx context.Context, id int64) (*audit.Result, error) {
	query := `
		SELECT id, target, observed_at, load_time_ms, ttfb_ms, body_size_bytes, status_code, score, recommendations
		FROM audits WHERE id = ?
	`

	res, err := scanAudit(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("Audit")
	}
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to get audit", err)
	}
	return res, nil
}

func (r *AuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Result, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.Target != "" {
		where = append(where, "target = ?")
		args = append(args, filter.Target)
	}
	if filter.MinScore != nil {
		where = append(where, "score >= ?")
		args = append(args, *filter.MinScore)
	}
	if filter.MaxScore != nil {
		where = append(where, "score <= ?")
		args = append(args, *filter.MaxScore)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, target, observed_at, load_time_ms, ttfb_ms, body_size_bytes, status_code, score, recommendations
		FROM audits WHERE %s ORDER BY observed_at DESC LIMIT ?
	`, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list audits", err)
	}
	defer rows.Close()

	var results []*audit.Result
	for rows.Next() {
		res, err := scanAudit(rows)
		if err != nil {
			return nil, apperrors.DatabaseError("Failed to scan audit", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.DatabaseError("Failed to list audits", err)
	}

	return results, nil
}

func (r *AuditRepository) LatestByTarget(ctx context.Context, target string) (*audit.Result, error) {
	query := `
		SELECT id, target, observed_at, load_time_ms, ttfb_ms, body_size_bytes, status_code, score, recommendations
		FROM audits WHERE target = ? ORDER BY observed_at DESC LIMIT 1
	`

	res, err := scanAudit(r.db.QueryRowContext(ctx, query, target))
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("Audit")
	}
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to get latest audit", err)
	}
	return res, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAudit(s scanner) (*audit.Result, error) {
	var res audit.Result
	var recsJSON string

	err := s.Scan(
		&res.ID, &res.Target, &res.ObservedAt,
		&res.Metrics.LoadTimeMs, &res.Metrics.TimeToFirstByteMs, &res.Metrics.BodySizeBytes, &res.Metrics.StatusCode,
		&res.Score, &recsJSON,
	)
	if err != nil {
		return nil, err
	}

	if recsJSON != "" {
		var recs []recommendation.Recommendation
		if err := json.Unmarshal([]byte(recsJSON), &recs); err == nil {
			res.Recommendations = recs
		}
	}

	return &res, nil
}
