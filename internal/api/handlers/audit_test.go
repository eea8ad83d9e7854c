package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kirkbot2/speedaudit/internal/domain/audit"
	"github.com/kirkbot2/speedaudit/internal/pkg/errors"
	"github.com/kirkbot2/speedaudit/internal/pkg/logger"
	"github.com/kirkbot2/speedaudit/internal/pkg/validator"
)

// fakeService is a canned audit.Service for handler tests.
type fakeService struct {
	runResult  *audit.Result
	runErr     error
	gotRequest audit.RunRequest

	getResult *audit.Result
	getErr    error

	listResults []*audit.Result
	gotFilter   audit.Filter
}

func (f *fakeService) RunAudit(ctx context.Context, req audit.RunRequest) (*audit.Result, error) {
	f.gotRequest = req
	return f.runResult, f.runErr
}

func (f *fakeService) GetAudit(ctx context.Context, id int64) (*audit.Result, error) {
	return f.getResult, f.getErr
}

func (f *fakeService) History(ctx context.Context, filter audit.Filter) ([]*audit.Result, error) {
	f.gotFilter = filter
	return f.listResults, nil
}

func (f *fakeService) LatestByTarget(ctx context.Context, target string) (*audit.Result, error) {
	return f.getResult, f.getErr
}

func newTestRouter(svc audit.Service) http.Handler {
	log := logger.New(logger.Config{Level: "error"})
	h := NewAuditHandler(svc, validator.New(), log)

	r := chi.NewRouter()
	r.Post("/api/v1/audits", h.Run)
	r.Get("/api/v1/audits", h.List)
	r.Get("/api/v1/audits/latest", h.Latest)
	r.Get("/api/v1/audits/{id}", h.Get)
	return r
}

func storedResult() *audit.Result {
	return &audit.Result{
		ID:         7,
		Target:     "https://example.com",
		ObservedAt: time.Now(),
		Metrics: audit.Metrics{
			LoadTimeMs: 1200,
			StatusCode: 200,
		},
		Score: 95,
	}
}

func TestAuditHandlerRun(t *testing.T) {
	svc := &fakeService{runResult: storedResult()}
	router := newTestRouter(svc)

	body := `{"url":"https://example.com","timeout_ms":5000,"competitors":["https://rival.example"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audits", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if svc.gotRequest.Target != "https://example.com" {
		t.Errorf("target = %q", svc.gotRequest.Target)
	}
	if svc.gotRequest.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", svc.gotRequest.Timeout)
	}
	if len(svc.gotRequest.Competitors) != 1 {
		t.Errorf("competitors = %v", svc.gotRequest.Competitors)
	}

	var resp struct {
		Success bool         `json:"success"`
		Data    audit.Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.ID != 7 || resp.Data.Score != 95 {
		t.Errorf("response = %+v", resp)
	}
}

func TestAuditHandlerRunValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"not a url", `{"url":"not-a-url"}`},
		{"negative timeout", `{"url":"https://example.com","timeout_ms":-5}`},
		{"bad competitor", `{"url":"https://example.com","competitors":["nope"]}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{runResult: storedResult()}
			router := newTestRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/audits", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if svc.gotRequest.Target != "" {
				t.Error("service was called despite invalid input")
			}
		})
	}
}

func TestAuditHandlerRunEngineFailure(t *testing.T) {
	svc := &fakeService{runErr: errors.TimeoutError("https://slow.example", context.DeadlineExceeded)}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/audits", strings.NewReader(`{"url":"https://slow.example"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", rec.Code)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Code != errors.ErrCodeTimeout {
		t.Errorf("error code = %q", resp.Error.Code)
	}
}

func TestAuditHandlerGet(t *testing.T) {
	svc := &fakeService{getResult: storedResult()}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audits/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuditHandlerGetNotFound(t *testing.T) {
	svc := &fakeService{getErr: errors.NotFound("audit")}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audits/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAuditHandlerGetBadID(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audits/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAuditHandlerListFilters(t *testing.T) {
	svc := &fakeService{listResults: []*audit.Result{storedResult()}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audits?url=https%3A%2F%2Fexample.com&min_score=50&limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if svc.gotFilter.Target != "https://example.com" {
		t.Errorf("filter target = %q", svc.gotFilter.Target)
	}
	if svc.gotFilter.MinScore == nil || *svc.gotFilter.MinScore != 50 {
		t.Errorf("filter minScore = %v", svc.gotFilter.MinScore)
	}
	if svc.gotFilter.Limit != 10 {
		t.Errorf("filter limit = %d", svc.gotFilter.Limit)
	}
}

func TestAuditHandlerListBadQuery(t *testing.T) {
	router := newTestRouter(&fakeService{})

	for _, query := range []string{"min_score=abc", "min_score=150", "limit=-1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/audits?"+query, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", query, rec.Code)
		}
	}
}

func TestAuditHandlerLatestRequiresURL(t *testing.T) {
	router := newTestRouter(&fakeService{getResult: storedResult()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audits/latest", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/audits/latest?url=https%3A%2F%2Fexample.com", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
