package dataset

import (
	"context"

	"github.com/google/uuid"

	"marquee/adapters/excel"
	"marquee/domain/show"
	"marquee/internal/errors"
	"marquee/ports"
)

// LoadResult is what a Loader hands back: raw rows plus their provenance
type LoadResult struct {
	Rows       []show.RawRecord
	Source     string
	SnapshotID uuid.UUID
}

// Loader fetches raw rows from a data source
type Loader interface {
	LoadRaw(ctx context.Context) (LoadResult, error)
}

// FileLoader reads a CSV or XLSX file through the spreadsheet reader
type FileLoader struct {
	Reader  *excel.DataReader
	Columns excel.ColumnMap
}

// NewFileLoader creates a loader for a CSV or XLSX path
func NewFileLoader(path, sheet string, columns excel.ColumnMap) *FileLoader {
	return &FileLoader{Reader: excel.NewDataReader(path, sheet), Columns: columns}
}

// LoadRaw reads the file; each read gets a fresh snapshot ID
func (l *FileLoader) LoadRaw(ctx context.Context) (LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return LoadResult{}, err
	}
	rows, err := l.Reader.ReadRecords(l.Columns)
	if err != nil {
		return LoadResult{}, errors.Wrapf(err, "failed to load %s", l.Reader.FilePath())
	}
	return LoadResult{Rows: rows, Source: "file:" + l.Reader.FilePath(), SnapshotID: uuid.New()}, nil
}

// RepositoryLoader reads the newest snapshot from the record store
type RepositoryLoader struct {
	Repo ports.RecordRepository
}

// LoadRaw loads the latest snapshot's rows
func (l *RepositoryLoader) LoadRaw(ctx context.Context) (LoadResult, error) {
	snap, err := l.Repo.LatestSnapshot(ctx)
	if err != nil {
		return LoadResult{}, errors.Wrap(err, "failed to find latest snapshot")
	}
	rows, err := l.Repo.LoadRaw(ctx, snap.ID)
	if err != nil {
		return LoadResult{}, errors.Wrap(err, "failed to load snapshot rows")
	}
	return LoadResult{Rows: rows, Source: "postgres:" + snap.Source, SnapshotID: snap.ID}, nil
}

// Import reads a loader's rows and stores them as a new snapshot
func Import(ctx context.Context, repo ports.RecordRepository, loader Loader, source string) (show.Snapshot, error) {
	res, err := loader.LoadRaw(ctx)
	if err != nil {
		return show.Snapshot{}, err
	}

	snap := show.NewSnapshot(source, len(res.Rows))
	if err := repo.SaveSnapshot(ctx, snap, res.Rows); err != nil {
		return show.Snapshot{}, errors.Wrapf(err, "failed to import %s", source)
	}
	return snap, nil
}
