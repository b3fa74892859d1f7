package submissions

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func newMockRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewPostgresRepository(mock), mock
}

func TestPostgresCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdAt := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO consultation_submissions").
		WithArgs(
			pgxmock.AnyArg(), "Jane Doe", "jane@x.com", "", "", "", "",
			[]string{"vat"}, "VAT", "", "", "", "", "", "en",
			"smartpro-consultation-form", StatusPending,
		).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	sub := &Submission{
		Name:           "Jane Doe",
		Email:          "jane@x.com",
		Services:       []string{"vat"},
		PrimaryService: "VAT",
		Language:       "en",
		Source:         "smartpro-consultation-form",
	}
	id, err := repo.Create(context.Background(), sub)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" || sub.ID != id {
		t.Errorf("expected id to be set, got %q / %q", id, sub.ID)
	}
	if sub.Status != StatusPending {
		t.Errorf("expected pending status, got %q", sub.Status)
	}
	if !sub.CreatedAt.Equal(createdAt) {
		t.Errorf("expected created_at from database, got %v", sub.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreateFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO consultation_submissions").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(context.Background(), &Submission{Name: "Jane Doe", Email: "jane@x.com"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPostgresMarkDelivered(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Now()

	mock.ExpectExec("UPDATE consultation_submissions").
		WithArgs("id-1", true, at, StatusContacted).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.MarkDelivered(context.Background(), "id-1", true, at); err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresMarkDeliveredNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Now()

	mock.ExpectExec("UPDATE consultation_submissions").
		WithArgs("missing", false, at, StatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.MarkDelivered(context.Background(), "missing", false, at); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresStats(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT count").
		WillReturnRows(pgxmock.NewRows([]string{"count", "count"}).AddRow(5, 2))
	mock.ExpectQuery("SELECT status, count").
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow(StatusPending, 3).
			AddRow(StatusContacted, 2))

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 5 || stats.Recent != 2 {
		t.Errorf("totals: got %d/%d", stats.Total, stats.Recent)
	}
	if stats.ByStatus[StatusPending] != 3 || stats.ByStatus[StatusContacted] != 2 {
		t.Errorf("byStatus: got %v", stats.ByStatus)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
