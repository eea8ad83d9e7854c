package audit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestEngine_CompareCompetitors(t *testing.T) {
	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer fast.Close()

	alsoFast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("also ok"))
	}))
	defer alsoFast.Close()

	// A competitor that refuses connections must be excluded, not abort
	// the comparison.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	engine := NewEngine(EngineConfig{Timeout: 2 * time.Second}, testLogger())

	scores := engine.CompareCompetitors(context.Background(), []string{fast.URL, deadURL, alsoFast.URL})

	if len(scores) != 2 {
		t.Fatalf("len(scores) = %d, want 2 (failing competitor excluded)", len(scores))
	}
	for _, s := range scores {
		if s.URL == deadURL {
			t.Errorf("failing competitor %s present in comparison", deadURL)
		}
	}
	for i := 1; i < len(scores); i++ {
		if scores[i-1].Score < scores[i].Score {
			t.Errorf("scores not sorted descending: %v", scores)
		}
	}
}

func TestEngine_CompareCompetitorsEmpty(t *testing.T) {
	engine := NewEngine(EngineConfig{}, testLogger())

	if scores := engine.CompareCompetitors(context.Background(), nil); len(scores) != 0 {
		t.Errorf("len(scores) = %d, want 0", len(scores))
	}
}
