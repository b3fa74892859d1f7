package submissions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository stores submissions in memory. Default when no
// database is configured, and the test double.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]*Submission
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]*Submission)}
}

// Create stores the submission and returns its generated ID.
func (r *InMemoryRepository) Create(_ context.Context, s *Submission) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *s
	stored.ID = uuid.NewString()
	if stored.Status == "" {
		stored.Status = StatusPending
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.rows[stored.ID] = &stored
	return stored.ID, nil
}

// MarkDelivered records the webhook delivery outcome.
func (r *InMemoryRepository) MarkDelivered(_ context.Context, id string, delivered bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	row.WebhookSent = delivered
	row.WebhookSentAt = &at
	if delivered {
		row.Status = StatusContacted
	}
	return nil
}

// Stats aggregates totals, last-24h count, and counts by status.
func (r *InMemoryRepository) Stats(_ context.Context) (*Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &Stats{ByStatus: make(map[string]int)}
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, row := range r.rows {
		stats.Total++
		if row.CreatedAt.After(cutoff) {
			stats.Recent++
		}
		stats.ByStatus[row.Status]++
	}
	return stats, nil
}

// Get returns a stored submission. Used by tests.
func (r *InMemoryRepository) Get(id string) (*Submission, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	return row, ok
}
