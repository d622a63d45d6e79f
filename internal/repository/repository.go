package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/budget-hub/internal/apperr"
	"github.com/google/uuid"
	_ "github.com/lib/pq"  // register postgres driver
	_ "modernc.org/sqlite" // register sqlite driver
)

// Repository provides database operations
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Open connects to the database behind driver ("postgres" or "sqlite") and
// verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*Repository, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite" {
		// An in-memory sqlite database lives in a single connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewRepository(db), nil
}

// Close closes the underlying database handle
func (r *Repository) Close() error {
	return r.db.Close()
}

// Migrate creates all tables that do not exist yet
func (r *Repository) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

// dateOnly truncates t to midnight UTC of its calendar day
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// storeErr tags a database error, mapping sql.ErrNoRows to NotFound
func storeErr(op string, err error) error {
	if err == sql.ErrNoRows {
		return apperr.E(apperr.NotFound, op, err)
	}
	return apperr.E(apperr.Infrastructure, op, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}
