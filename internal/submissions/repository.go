package submissions

import (
	"context"
	"errors"
	"time"
)

// Submission status values. A submission starts pending and moves to
// contacted once the webhook relay confirms delivery.
const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
)

// ErrNotFound is returned when a submission does not exist.
var ErrNotFound = errors.New("submissions: not found")

// Submission is a persisted consultation request with delivery bookkeeping.
type Submission struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	Location         string     `json:"location,omitempty"`
	Company          string     `json:"company,omitempty"`
	BusinessType     string     `json:"business_type,omitempty"`
	Services         []string   `json:"services"`
	PrimaryService   string     `json:"primary_service"`
	Budget           string     `json:"budget,omitempty"`
	Timeline         string     `json:"timeline,omitempty"`
	PreferredContact string     `json:"preferred_contact,omitempty"`
	PreferredTime    string     `json:"preferred_time,omitempty"`
	Message          string     `json:"message,omitempty"`
	Language         string     `json:"language"`
	Source           string     `json:"source"`
	Status           string     `json:"status"`
	WebhookSent      bool       `json:"webhook_sent"`
	WebhookSentAt    *time.Time `json:"webhook_sent_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Stats summarizes stored submissions for the admin endpoint.
type Stats struct {
	Total    int            `json:"total"`
	Recent   int            `json:"recent"`
	ByStatus map[string]int `json:"byStatus"`
}

// Repository persists submissions. Storage is best-effort in the request
// path: a failure here must never block the webhook relay.
type Repository interface {
	Create(ctx context.Context, s *Submission) (string, error)
	MarkDelivered(ctx context.Context, id string, delivered bool, at time.Time) error
	Stats(ctx context.Context) (*Stats, error)
}
