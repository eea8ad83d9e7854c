package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/kirkbot2/speedaudit/internal/config"
	"github.com/kirkbot2/speedaudit/internal/domain/audit"
	"github.com/kirkbot2/speedaudit/internal/domain/recommendation"
	apperrors "github.com/kirkbot2/speedaudit/internal/pkg/errors"
)

func testRepo(t *testing.T) audit.Repository {
	t.Helper()

	db, err := New(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   t.TempDir() + "/audits.db",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewAuditRepository(db)
}

func sampleResult(target string, score int) *audit.Result {
	return &audit.Result{
		Target:     target,
		ObservedAt: time.Now().UTC(),
		Metrics: audit.Metrics{
			LoadTimeMs:        1200,
			TimeToFirstByteMs: 180,
			BodySizeBytes:     250_000,
			StatusCode:        200,
		},
		Recommendations: []recommendation.Recommendation{
			{
				Severity: recommendation.SeverityInfo,
				Category: recommendation.CategoryCaching,
				Title:    "Set cache headers",
			},
		},
		Score: score,
	}
}

func TestAuditRepository_CreateAndGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleResult("https://example.com", 92))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == 0 {
		t.Fatal("Create() returned 0 id")
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Target != "https://example.com" {
		t.Errorf("Target = %q, want https://example.com", got.Target)
	}
	if got.Score != 92 {
		t.Errorf("Score = %d, want 92", got.Score)
	}
	if got.Metrics.LoadTimeMs != 1200 || got.Metrics.StatusCode != 200 {
		t.Errorf("Metrics = %+v, want load=1200 status=200", got.Metrics)
	}
	if len(got.Recommendations) != 1 || got.Recommendations[0].Category != recommendation.CategoryCaching {
		t.Errorf("Recommendations = %+v, want the stored caching entry", got.Recommendations)
	}
}

func TestAuditRepository_GetMissing(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.GetByID(context.Background(), 9999)
	if !apperrors.IsNotFound(err) {
		t.Errorf("GetByID() error = %v, want NOT_FOUND", err)
	}
}

func TestAuditRepository_ListAndFilter(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	targets := []struct {
		url   string
		score int
	}{
		{"https://a.example.com", 95},
		{"https://b.example.com", 40},
		{"https://a.example.com", 88},
	}
	for i, tgt := range targets {
		res := sampleResult(tgt.url, tgt.score)
		res.ObservedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		if _, err := repo.Create(ctx, res); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := repo.List(ctx, audit.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(all))
	}

	byTarget, err := repo.List(ctx, audit.Filter{Target: "https://a.example.com"})
	if err != nil {
		t.Fatalf("List(target) error = %v", err)
	}
	if len(byTarget) != 2 {
		t.Errorf("len(List(target)) = %d, want 2", len(byTarget))
	}
	// Most recent first
	if byTarget[0].Score != 88 {
		t.Errorf("List(target)[0].Score = %d, want 88 (newest)", byTarget[0].Score)
	}

	minScore := 60
	passing, err := repo.List(ctx, audit.Filter{MinScore: &minScore})
	if err != nil {
		t.Fatalf("List(minScore) error = %v", err)
	}
	if len(passing) != 2 {
		t.Errorf("len(List(minScore)) = %d, want 2", len(passing))
	}

	limited, err := repo.List(ctx, audit.Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List(limit) error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("len(List(limit=1)) = %d, want 1", len(limited))
	}
}

func TestAuditRepository_LatestByTarget(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first := sampleResult("https://example.com", 70)
	first.ObservedAt = time.Now().UTC().Add(-time.Hour)
	second := sampleResult("https://example.com", 85)
	second.ObservedAt = time.Now().UTC()

	for _, res := range []*audit.Result{first, second} {
		if _, err := repo.Create(ctx, res); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	latest, err := repo.LatestByTarget(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("LatestByTarget() error = %v", err)
	}
	if latest.Score != 85 {
		t.Errorf("LatestByTarget().Score = %d, want 85", latest.Score)
	}

	if _, err := repo.LatestByTarget(ctx, "https://never-audited.example.com"); !apperrors.IsNotFound(err) {
		t.Errorf("LatestByTarget(missing) error = %v, want NOT_FOUND", err)
	}
}
