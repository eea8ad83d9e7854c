package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AuditService handles audit-related API calls
type AuditService struct {
	client *Client
}

// RunAuditRequest represents a request to run a new audit
type RunAuditRequest struct {
	URL         string   `json:"url"`
	TimeoutMs   int      `json:"timeout_ms,omitempty"`
	Competitors []string `json:"competitors,omitempty"`
}

// AuditListOptions contains options for listing audit history
type AuditListOptions struct {
	URL      string
	MinScore *int
	MaxScore *int
	Limit    int
}

// Run triggers a new audit and blocks until it completes
func (s *AuditService) Run(ctx context.Context, req RunAuditRequest) (*Audit, error) {
	var audit Audit
	if err := s.client.doRequest(ctx, "POST", "/api/v1/audits", req, &audit); err != nil {
		return nil, err
	}

	return &audit, nil
}

// List retrieves audit history
func (s *AuditService) List(ctx context.Context, opts *AuditListOptions) ([]Audit, error) {
	query := url.Values{}

	if opts != nil {
		if opts.URL != "" {
			query.Set("url", opts.URL)
		}
		if opts.MinScore != nil {
			query.Set("min_score", strconv.Itoa(*opts.MinScore))
		}
		if opts.MaxScore != nil {
			query.Set("max_score", strconv.Itoa(*opts.MaxScore))
		}
		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}
	}

	path := "/api/v1/audits"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var audits []Audit
	if err := s.client.doRequest(ctx, "GET", path, nil, &audits); err != nil {
		return nil, err
	}

	return audits, nil
}

// Get retrieves a single audit by ID
func (s *AuditService) Get(ctx context.Context, id int64) (*Audit, error) {
	path := fmt.Sprintf("/api/v1/audits/%d", id)

	var audit Audit
	if err := s.client.doRequest(ctx, "GET", path, nil, &audit); err != nil {
		return nil, err
	}

	return &audit, nil
}

// Latest retrieves the most recent audit for a URL
func (s *AuditService) Latest(ctx context.Context, target string) (*Audit, error) {
	query := url.Values{}
	query.Set("url", target)

	var audit Audit
	if err := s.client.doRequest(ctx, "GET", "/api/v1/audits/latest?"+query.Encode(), nil, &audit); err != nil {
		return nil, err
	}

	return &audit, nil
}
