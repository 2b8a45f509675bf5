package dataset

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marquee/domain/show"
	"marquee/internal/errors"
)

// memoryRepository is an in-memory RecordRepository
type memoryRepository struct {
	mu        sync.Mutex
	snapshots []show.Snapshot
	rows      map[uuid.UUID][]show.RawRecord
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[uuid.UUID][]show.RawRecord)}
}

func (m *memoryRepository) SaveSnapshot(ctx context.Context, snap show.Snapshot, rows []show.RawRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, snap)
	m.rows[snap.ID] = append([]show.RawRecord(nil), rows...)
	return nil
}

func (m *memoryRepository) LatestSnapshot(ctx context.Context) (*show.Snapshot, error) {
	list, _ := m.ListSnapshots(ctx, 1)
	if len(list) == 0 {
		return nil, errors.NotFound("no snapshots")
	}
	return &list[0], nil
}

func (m *memoryRepository) ListSnapshots(ctx context.Context, limit int) ([]show.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := append([]show.Snapshot(nil), m.snapshots...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].ImportedAt.After(list[j].ImportedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *memoryRepository) LoadRaw(ctx context.Context, snapshotID uuid.UUID) ([]show.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[snapshotID], nil
}

func TestImportThenRepositoryLoader(t *testing.T) {
	repo := newMemoryRepository()
	loader := &countingLoader{rows: sampleRows()}

	snap, err := Import(context.Background(), repo, loader, "shows.csv")
	require.NoError(t, err)
	assert.Equal(t, "shows.csv", snap.Source)
	assert.Equal(t, len(sampleRows()), snap.RowCount)

	res, err := (&RepositoryLoader{Repo: repo}).LoadRaw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap.ID, res.SnapshotID)
	assert.Equal(t, "postgres:shows.csv", res.Source)
	assert.Equal(t, sampleRows(), res.Rows)
}

func TestImportPropagatesLoadErrors(t *testing.T) {
	repo := newMemoryRepository()
	loader := &countingLoader{err: errors.NotFound("shows.csv")}

	_, err := Import(context.Background(), repo, loader, "shows.csv")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	assert.Empty(t, repo.snapshots)
}

func TestRepositoryLoaderWithoutSnapshots(t *testing.T) {
	_, err := (&RepositoryLoader{Repo: newMemoryRepository()}).LoadRaw(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
