package dto

import (
	"time"

	"github.com/kirkbot2/speedaudit/internal/domain/audit"
)

// RunAuditRequest is the payload for triggering an audit over the API.
type RunAuditRequest struct {
	URL         string   `json:"url" validate:"required,url"`
	TimeoutMs   int      `json:"timeout_ms,omitempty" validate:"omitempty,gt=0,lte=120000"`
	Competitors []string `json:"competitors,omitempty" validate:"omitempty,max=10,dive,url"`
}

// ToRunRequest converts the DTO to a domain run request
func (r *RunAuditRequest) ToRunRequest() audit.RunRequest {
	return audit.RunRequest{
		Target:      r.URL,
		Timeout:     time.Duration(r.TimeoutMs) * time.Millisecond,
		Competitors: r.Competitors,
	}
}

// ListAuditsQuery holds the parsed query parameters of a history listing.
type ListAuditsQuery struct {
	URL      string `validate:"omitempty,url"`
	MinScore *int   `validate:"omitempty,gte=0,lte=100"`
	MaxScore *int   `validate:"omitempty,gte=0,lte=100"`
	Limit    int    `validate:"omitempty,gt=0,lte=500"`
}

// ToFilter converts the query to a domain filter
func (q *ListAuditsQuery) ToFilter() audit.Filter {
	return audit.Filter{
		Target:   q.URL,
		MinScore: q.MinScore,
		MaxScore: q.MaxScore,
		Limit:    q.Limit,
	}
}
