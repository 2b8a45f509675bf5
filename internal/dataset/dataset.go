package dataset

import (
	"time"

	"github.com/google/uuid"

	"marquee/domain/show"
	"marquee/internal/pipeline"
)

// Dataset is the cleaned, immutable record set shared by every request.
// Nothing may modify Records after New returns.
type Dataset struct {
	SnapshotID uuid.UUID
	Source     string
	LoadedAt   time.Time
	Records    []show.Record
	MinDate    time.Time
	MaxDate    time.Time
	Stats      pipeline.CleanStats
}

// New cleans raw rows into a Dataset and records its date bounds
func New(source string, snapshotID uuid.UUID, raw []show.RawRecord) *Dataset {
	records, stats := pipeline.CleanWithStats(raw)

	ds := &Dataset{
		SnapshotID: snapshotID,
		Source:     source,
		LoadedAt:   time.Now().UTC(),
		Records:    records,
		Stats:      stats,
	}
	for i, r := range records {
		if i == 0 || r.Date.Before(ds.MinDate) {
			ds.MinDate = r.Date
		}
		if i == 0 || r.Date.After(ds.MaxDate) {
			ds.MaxDate = r.Date
		}
	}
	return ds
}

// Empty reports whether no record survived cleaning
func (d *Dataset) Empty() bool {
	return len(d.Records) == 0
}

// DefaultParams covers the whole dataset, every show, top performances
func (d *Dataset) DefaultParams(limit int) show.Params {
	return show.Params{
		Start:     d.MinDate,
		End:       d.MaxDate,
		Show:      show.AllShows,
		Metric:    show.MetricPerformances,
		Direction: show.DirectionTop,
		Limit:     limit,
	}
}

// Explore runs the pipeline over this dataset
func (d *Dataset) Explore(p show.Params) pipeline.Report {
	return pipeline.Explore(d.Records, d.MinDate, d.MaxDate, p)
}
