package ports

import (
	"context"

	"github.com/google/uuid"

	"marquee/domain/show"
)

// RecordRepository stores imported raw show-week rows by snapshot
type RecordRepository interface {
	SaveSnapshot(ctx context.Context, snap show.Snapshot, rows []show.RawRecord) error
	LatestSnapshot(ctx context.Context) (*show.Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]show.Snapshot, error)
	LoadRaw(ctx context.Context, snapshotID uuid.UUID) ([]show.RawRecord, error)
}
