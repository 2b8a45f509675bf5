package migration

import (
	"context"

	"marquee/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Statements returns the schema statements in execution order
func (r *MigrationRunner) Statements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id UUID PRIMARY KEY,
			source TEXT NOT NULL,
			row_count INTEGER NOT NULL DEFAULT 0,
			imported_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS show_weeks (
			id BIGSERIAL PRIMARY KEY,
			snapshot_id UUID NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			row_num INTEGER NOT NULL,
			week_date TEXT NOT NULL DEFAULT '',
			show TEXT NOT NULL DEFAULT '',
			weekly_gross TEXT NOT NULL DEFAULT '',
			performances TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_show_weeks_snapshot_row ON show_weeks(snapshot_id, row_num)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_imported_at ON snapshots(imported_at DESC)`,
	}
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range r.Statements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "migration step %d failed", i+1)
		}
	}
	return nil
}
