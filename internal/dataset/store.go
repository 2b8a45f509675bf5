package dataset

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"marquee/internal"
	"marquee/internal/errors"
)

// Store owns the current Dataset. The first Get loads it; concurrent callers
// share that single load. Reload swaps in a fresh Dataset and keeps the old
// one if loading fails.
type Store struct {
	loader Loader
	logger *internal.Logger
	group  singleflight.Group

	mu      sync.RWMutex
	current *Dataset
}

// NewStore creates a store around a loader
func NewStore(loader Loader, logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Store{loader: loader, logger: logger}
}

// Get returns the loaded dataset, loading it on first use
func (s *Store) Get(ctx context.Context) (*Dataset, error) {
	if ds := s.cached(); ds != nil {
		return ds, nil
	}

	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		if ds := s.cached(); ds != nil {
			return ds, nil
		}
		return s.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// Reload re-reads the data source and replaces the current dataset
func (s *Store) Reload(ctx context.Context) (*Dataset, error) {
	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// Set installs a dataset directly, bypassing the loader
func (s *Store) Set(ds *Dataset) {
	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()
}

func (s *Store) cached() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) load(ctx context.Context) (*Dataset, error) {
	res, err := s.loader.LoadRaw(ctx)
	if err != nil {
		s.logger.Error("dataset load failed: %v", err)
		// a source that cannot be read is a server-side condition whatever
		// the reader reported
		return nil, errors.Unavailable("dataset could not be loaded", err)
	}

	ds := New(res.Source, res.SnapshotID, res.Rows)
	s.logger.Info("dataset %s loaded from %s: %d rows kept, %d dropped (unparseable date), %d gross and %d performance values defaulted to 0",
		ds.SnapshotID, ds.Source, ds.Stats.Kept, ds.Stats.DroppedDates, ds.Stats.ZeroedGross, ds.Stats.ZeroedPerfs)
	if ds.Empty() {
		s.logger.Warn("dataset %s has no usable rows", ds.SnapshotID)
	}

	s.Set(ds)
	return ds, nil
}
