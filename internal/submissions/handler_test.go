package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetStats(t *testing.T) {
	repo := NewInMemoryRepository()
	id, _ := repo.Create(context.Background(), &Submission{Name: "Jane Doe", Email: "jane@x.com"})
	_ = repo.MarkDelivered(context.Background(), id, true, time.Now())

	handler := NewStatsHandler(repo, nil)
	req := httptest.NewRequest(http.MethodGet, "/admin/consultation/stats", nil)
	w := httptest.NewRecorder()
	handler.GetStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats Stats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Total != 1 || stats.ByStatus[StatusContacted] != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestGetStatsWithoutStorage(t *testing.T) {
	handler := NewStatsHandler(nil, nil)
	w := httptest.NewRecorder()
	handler.GetStats(w, httptest.NewRequest(http.MethodGet, "/admin/consultation/stats", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

type erroringRepo struct{}

func (erroringRepo) Create(context.Context, *Submission) (string, error) { return "", errors.New("x") }
func (erroringRepo) MarkDelivered(context.Context, string, bool, time.Time) error {
	return errors.New("x")
}
func (erroringRepo) Stats(context.Context) (*Stats, error) { return nil, errors.New("x") }

func TestGetStatsRepositoryError(t *testing.T) {
	handler := NewStatsHandler(erroringRepo{}, nil)
	w := httptest.NewRecorder()
	handler.GetStats(w, httptest.NewRequest(http.MethodGet, "/admin/consultation/stats", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
