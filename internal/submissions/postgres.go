package submissions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs; satisfied by
// pgxmock in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores submissions in the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("submissions: db required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row and returns its ID.
func (r *PostgresRepository) Create(ctx context.Context, s *Submission) (string, error) {
	id := uuid.New()
	query := `
		INSERT INTO consultation_submissions (
			id, name, email, phone, location, company, business_type,
			services, primary_service, budget, timeline,
			preferred_contact, preferred_time, message, language,
			source, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at
	`
	status := s.Status
	if status == "" {
		status = StatusPending
	}
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		s.Name,
		s.Email,
		s.Phone,
		s.Location,
		s.Company,
		s.BusinessType,
		s.Services,
		s.PrimaryService,
		s.Budget,
		s.Timeline,
		s.PreferredContact,
		s.PreferredTime,
		s.Message,
		s.Language,
		s.Source,
		status,
	).Scan(&createdAt); err != nil {
		return "", fmt.Errorf("submissions: insert failed: %w", err)
	}

	s.ID = id.String()
	s.Status = status
	s.CreatedAt = createdAt
	return s.ID, nil
}

// MarkDelivered records the webhook delivery outcome.
func (r *PostgresRepository) MarkDelivered(ctx context.Context, id string, delivered bool, at time.Time) error {
	status := StatusPending
	if delivered {
		status = StatusContacted
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE consultation_submissions
		SET webhook_sent = $2, webhook_sent_at = $3, status = $4
		WHERE id = $1
	`, id, delivered, at, status)
	if err != nil {
		return fmt.Errorf("submissions: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates totals, last-24h count, and counts by status.
func (r *PostgresRepository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByStatus: make(map[string]int)}

	if err := r.db.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE created_at > now() - interval '24 hours')
		FROM consultation_submissions
	`).Scan(&stats.Total, &stats.Recent); err != nil {
		return nil, fmt.Errorf("submissions: stats totals: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT status, count(*)
		FROM consultation_submissions
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("submissions: stats by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("submissions: scan status row: %w", err)
		}
		stats.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("submissions: stats rows: %w", err)
	}
	return stats, nil
}
