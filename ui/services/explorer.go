package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"marquee/domain/show"
	"marquee/internal/config"
	"marquee/internal/dataset"
	"marquee/internal/errors"
	"marquee/internal/pipeline"
	"marquee/internal/summary"
)

// LimitStep is the granularity of the ranking-size selector on the page
const LimitStep = 5

// Query is the raw explorer parameter set as received over HTTP
type Query struct {
	Start     string `form:"start" json:"start"`
	End       string `form:"end" json:"end"`
	Show      string `form:"show" json:"show"`
	Metric    string `form:"metric" json:"metric"`
	Direction string `form:"direction" json:"direction"`
	Limit     string `form:"limit" json:"limit"`
}

// QueryFromValues builds a Query from URL query values
func QueryFromValues(v url.Values) Query {
	return Query{
		Start:     v.Get("start"),
		End:       v.Get("end"),
		Show:      v.Get("show"),
		Metric:    v.Get("metric"),
		Direction: v.Get("direction"),
		Limit:     v.Get("limit"),
	}
}

// DatasetInfo describes the dataset a view was computed from
type DatasetInfo struct {
	SnapshotID string              `json:"snapshot_id"`
	Source     string              `json:"source"`
	LoadedAt   time.Time           `json:"loaded_at"`
	MinDate    string              `json:"min_date"`
	MaxDate    string              `json:"max_date"`
	Stats      pipeline.CleanStats `json:"clean_stats"`
}

// View is everything the renderers need for one request
type View struct {
	Dataset DatasetInfo     `json:"dataset"`
	Report  pipeline.Report `json:"report"`
	Summary summary.Summary `json:"summary"`
}

// Explorer validates user parameters at the boundary and runs the pipeline
// against the store's current dataset
type Explorer struct {
	store  *dataset.Store
	limits config.ExplorerConfig
}

// NewExplorer creates an explorer service
func NewExplorer(store *dataset.Store, limits config.ExplorerConfig) *Explorer {
	return &Explorer{store: store, limits: limits}
}

// Limits returns the configured ranking-size bounds
func (e *Explorer) Limits() config.ExplorerConfig {
	return e.limits
}

// LimitOptions lists the ranking sizes offered by the page selector
func (e *Explorer) LimitOptions() []int {
	opts := make([]int, 0)
	for n := LimitStep; n <= e.limits.MaxLimit; n += LimitStep {
		opts = append(opts, n)
	}
	if len(opts) == 0 {
		opts = append(opts, e.limits.MaxLimit)
	}
	return opts
}

// Explore resolves q against the current dataset and runs the pipeline
func (e *Explorer) Explore(ctx context.Context, q Query) (*View, error) {
	ds, err := e.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	p, err := e.ParseParams(ds, q)
	if err != nil {
		return nil, err
	}

	report := ds.Explore(p)
	windowed := pipeline.FilterByShow(pipeline.FilterByDate(ds.Records, p.Start, p.End), p.Show)

	return &View{
		Dataset: Describe(ds),
		Report:  report,
		Summary: summary.Summarize(windowed),
	}, nil
}

// Defaults returns the view for the default parameters
func (e *Explorer) Defaults(ctx context.Context) (*View, error) {
	return e.Explore(ctx, Query{})
}

// Reload re-reads the data source
func (e *Explorer) Reload(ctx context.Context) (DatasetInfo, error) {
	ds, err := e.store.Reload(ctx)
	if err != nil {
		return DatasetInfo{}, err
	}
	return Describe(ds), nil
}

// Dataset returns information about the current dataset
func (e *Explorer) Dataset(ctx context.Context) (DatasetInfo, error) {
	ds, err := e.store.Get(ctx)
	if err != nil {
		return DatasetInfo{}, err
	}
	return Describe(ds), nil
}

// Describe summarizes a dataset's provenance and bounds
func Describe(ds *dataset.Dataset) DatasetInfo {
	info := DatasetInfo{
		SnapshotID: ds.SnapshotID.String(),
		Source:     ds.Source,
		LoadedAt:   ds.LoadedAt,
		Stats:      ds.Stats,
	}
	if !ds.Empty() {
		info.MinDate = ds.MinDate.Format(show.ISODateLayout)
		info.MaxDate = ds.MaxDate.Format(show.ISODateLayout)
	}
	return info
}

// ParseParams validates q and fills defaults from the dataset: the full date
// range, every show, top performances, the configured default limit
func (e *Explorer) ParseParams(ds *dataset.Dataset, q Query) (show.Params, error) {
	p := ds.DefaultParams(e.limits.DefaultLimit)

	var err error
	if s := strings.TrimSpace(q.Start); s != "" {
		if p.Start, err = time.Parse(show.ISODateLayout, s); err != nil {
			return p, errors.InvalidInputf("start must be a YYYY-MM-DD date, got %q", q.Start)
		}
	}
	if s := strings.TrimSpace(q.End); s != "" {
		if p.End, err = time.Parse(show.ISODateLayout, s); err != nil {
			return p, errors.InvalidInputf("end must be a YYYY-MM-DD date, got %q", q.End)
		}
	}
	if p.Start.After(p.End) {
		return p, errors.InvalidInputf("start %s is after end %s",
			p.Start.Format(show.ISODateLayout), p.End.Format(show.ISODateLayout))
	}

	if q.Show != "" {
		p.Show = q.Show
	}

	if s := strings.ToLower(strings.TrimSpace(q.Metric)); s != "" {
		p.Metric = show.Metric(s)
		if !p.Metric.Valid() {
			return p, errors.InvalidInputf("metric must be %q or %q, got %q", show.MetricPerformances, show.MetricGross, q.Metric)
		}
	}

	if s := strings.ToLower(strings.TrimSpace(q.Direction)); s != "" {
		p.Direction = show.Direction(s)
		if !p.Direction.Valid() {
			return p, errors.InvalidInputf("direction must be %q or %q, got %q", show.DirectionTop, show.DirectionBottom, q.Direction)
		}
	}

	if s := strings.TrimSpace(q.Limit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > e.limits.MaxLimit {
			return p, errors.InvalidInputf("limit must be an integer between 1 and %d, got %q", e.limits.MaxLimit, q.Limit)
		}
		p.Limit = n
	}

	return p, nil
}
