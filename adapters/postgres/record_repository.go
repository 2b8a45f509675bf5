package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"marquee/domain/show"
	apperrors "marquee/internal/errors"
	"marquee/ports"
)

// insertBatchSize keeps each multi-row INSERT under Postgres' 65535 bind
// parameter limit (6 columns per row)
const insertBatchSize = 1000

// showWeekRow is the storage shape of one raw row
type showWeekRow struct {
	SnapshotID uuid.UUID `db:"snapshot_id"`
	RowNum     int       `db:"row_num"`
	show.RawRecord
}

// recordRepository implements ports.RecordRepository on Postgres
type recordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sqlx.DB) ports.RecordRepository {
	return &recordRepository{db: db}
}

// SaveSnapshot inserts the snapshot and all of its rows in one transaction
func (r *recordRepository) SaveSnapshot(ctx context.Context, snap show.Snapshot, rows []show.RawRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.DatabaseError("failed to begin snapshot transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.NamedExecContext(ctx, `INSERT INTO snapshots (id, source, row_count, imported_at)
		VALUES (:id, :source, :row_count, :imported_at)`, snap)
	if err != nil {
		return apperrors.DatabaseError("failed to create snapshot", err)
	}

	for _, batch := range batchRows(snap.ID, rows, insertBatchSize) {
		_, err := tx.NamedExecContext(ctx, `INSERT INTO show_weeks
			(snapshot_id, row_num, week_date, show, weekly_gross, performances)
			VALUES (:snapshot_id, :row_num, :week_date, :show, :weekly_gross, :performances)`, batch)
		if err != nil {
			return apperrors.DatabaseError(fmt.Sprintf("failed to insert rows for snapshot %s", snap.ID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.DatabaseError("failed to commit snapshot", err)
	}
	return nil
}

// LatestSnapshot returns the most recently imported snapshot
func (r *recordRepository) LatestSnapshot(ctx context.Context) (*show.Snapshot, error) {
	var snap show.Snapshot
	err := r.db.GetContext(ctx, &snap, `SELECT id, source, row_count, imported_at
		FROM snapshots ORDER BY imported_at DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("snapshot")
		}
		return nil, apperrors.DatabaseError("failed to get latest snapshot", err)
	}
	return &snap, nil
}

// ListSnapshots returns snapshots newest first
func (r *recordRepository) ListSnapshots(ctx context.Context, limit int) ([]show.Snapshot, error) {
	snaps := []show.Snapshot{}
	err := r.db.SelectContext(ctx, &snaps, `SELECT id, source, row_count, imported_at
		FROM snapshots ORDER BY imported_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list snapshots", err)
	}
	return snaps, nil
}

// LoadRaw returns the rows of a snapshot in their original order
func (r *recordRepository) LoadRaw(ctx context.Context, snapshotID uuid.UUID) ([]show.RawRecord, error) {
	rows := []show.RawRecord{}
	err := r.db.SelectContext(ctx, &rows, `SELECT week_date, show, weekly_gross, performances
		FROM show_weeks WHERE snapshot_id = $1 ORDER BY row_num`, snapshotID)
	if err != nil {
		return nil, apperrors.DatabaseError(fmt.Sprintf("failed to load rows for snapshot %s", snapshotID), err)
	}
	return rows, nil
}

// batchRows splits rows into insert batches, numbering rows from 0 in input order
func batchRows(snapshotID uuid.UUID, rows []show.RawRecord, size int) [][]showWeekRow {
	if size <= 0 {
		size = insertBatchSize
	}
	batches := make([][]showWeekRow, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		batch := make([]showWeekRow, 0, end-start)
		for i := start; i < end; i++ {
			batch = append(batch, showWeekRow{SnapshotID: snapshotID, RowNum: i, RawRecord: rows[i]})
		}
		batches = append(batches, batch)
	}
	return batches
}
