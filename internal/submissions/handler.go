package submissions

import (
	"encoding/json"
	"net/http"

	"github.com/smartpro/consultation-intake/pkg/logging"
)

// StatsHandler serves admin submission statistics.
type StatsHandler struct {
	repo   Repository
	logger *logging.Logger
}

// NewStatsHandler creates a stats handler. repo may be nil when no
// persistence is configured; requests then get 503.
func NewStatsHandler(repo Repository, logger *logging.Logger) *StatsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsHandler{repo: repo, logger: logger}
}

// GetStats handles GET /admin/consultation/stats.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		http.Error(w, "submission storage not configured", http.StatusServiceUnavailable)
		return
	}

	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to aggregate submission stats", "error", err)
		http.Error(w, "failed to fetch stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}
