package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marquee/domain/show"
	"marquee/internal/config"
	"marquee/internal/dataset"
	"marquee/internal/errors"
)

func fixtureRows() []show.RawRecord {
	return []show.RawRecord{
		{Date: "2021-01-01", Show: "Hamilton", WeeklyGross: "$100.00", Performances: "8"},
		{Date: "2021-01-08", Show: "Hamilton", WeeklyGross: "$200.00", Performances: "8"},
		{Date: "2021-01-08", Show: "Wicked", WeeklyGross: "$300.00", Performances: "7"},
		{Date: "2021-01-15", Show: "Cats", WeeklyGross: "$0.00", Performances: "0"},
		{Date: "2021-01-15", Show: "Wicked", WeeklyGross: "$50.00", Performances: "8"},
	}
}

func newTestExplorer(t *testing.T) (*Explorer, *dataset.Dataset) {
	t.Helper()
	ds := dataset.New("test", uuid.New(), fixtureRows())
	store := dataset.NewStore(nil, nil)
	store.Set(ds)
	return NewExplorer(store, config.ExplorerConfig{DefaultLimit: 10, MaxLimit: 30}), ds
}

func date(s string) time.Time {
	t, _ := time.Parse(show.ISODateLayout, s)
	return t
}

func TestParseParams_Defaults(t *testing.T) {
	e, ds := newTestExplorer(t)

	p, err := e.ParseParams(ds, Query{})
	require.NoError(t, err)
	assert.Equal(t, date("2021-01-01"), p.Start)
	assert.Equal(t, date("2021-01-15"), p.End)
	assert.Equal(t, show.AllShows, p.Show)
	assert.Equal(t, show.MetricPerformances, p.Metric)
	assert.Equal(t, show.DirectionTop, p.Direction)
	assert.Equal(t, 10, p.Limit)
}

func TestParseParams_Overrides(t *testing.T) {
	e, ds := newTestExplorer(t)

	p, err := e.ParseParams(ds, Query{
		Start:     "2021-01-08",
		End:       "2021-01-08",
		Show:      "Wicked",
		Metric:    "GROSS",
		Direction: "bottom",
		Limit:     "30",
	})
	require.NoError(t, err)
	assert.Equal(t, date("2021-01-08"), p.Start)
	assert.Equal(t, date("2021-01-08"), p.End)
	assert.Equal(t, "Wicked", p.Show)
	assert.Equal(t, show.MetricGross, p.Metric)
	assert.Equal(t, show.DirectionBottom, p.Direction)
	assert.Equal(t, 30, p.Limit)
}

func TestParseParams_Rejects(t *testing.T) {
	e, ds := newTestExplorer(t)

	tests := []struct {
		name string
		q    Query
	}{
		{"bad start", Query{Start: "01/01/2021"}},
		{"bad end", Query{End: "tomorrow"}},
		{"start after end", Query{Start: "2021-01-15", End: "2021-01-01"}},
		{"unknown metric", Query{Metric: "revenue"}},
		{"unknown direction", Query{Direction: "middle"}},
		{"zero limit", Query{Limit: "0"}},
		{"limit over max", Query{Limit: "31"}},
		{"non-numeric limit", Query{Limit: "ten"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.ParseParams(ds, tt.q)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestExplore_SummaryFollowsTableFilter(t *testing.T) {
	e, _ := newTestExplorer(t)

	view, err := e.Explore(context.Background(), Query{Show: "Hamilton"})
	require.NoError(t, err)

	assert.Equal(t, 2, view.Report.Table.RowCount)
	assert.Equal(t, 2, view.Summary.Rows)
	assert.Equal(t, 1, view.Summary.Shows)
	assert.InDelta(t, 300.0, view.Summary.TotalGross, 1e-9)
	// rankings ignore the show filter
	require.Len(t, view.Report.Ranking, 3)
	assert.Equal(t, "Hamilton", view.Report.Ranking[0].Show)
}

func TestExplore_BottomRankingCarriesNote(t *testing.T) {
	e, _ := newTestExplorer(t)

	view, err := e.Explore(context.Background(), Query{Direction: "bottom"})
	require.NoError(t, err)

	require.Len(t, view.Report.Ranking, 2)
	assert.Equal(t, "Wicked", view.Report.Ranking[0].Show)
	assert.Equal(t, "Hamilton", view.Report.Ranking[1].Show)
	assert.Contains(t, view.Report.Note, "Bottom performance rankings exclude")
	assert.Equal(t, "bottom-10-performances.xlsx", view.RankingFilename())
}

func TestQueryFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("start", "2021-01-01")
	v.Set("show", "Cats")
	v.Set("limit", "5")

	q := QueryFromValues(v)
	assert.Equal(t, Query{Start: "2021-01-01", Show: "Cats", Limit: "5"}, q)
}

func TestLimitOptions(t *testing.T) {
	e, _ := newTestExplorer(t)
	assert.Equal(t, []int{5, 10, 15, 20, 25, 30}, e.LimitOptions())

	small := NewExplorer(nil, config.ExplorerConfig{DefaultLimit: 3, MaxLimit: 3})
	assert.Equal(t, []int{3}, small.LimitOptions())
}

func TestErrorBody(t *testing.T) {
	status, body := ErrorBody(errors.InvalidInput("limit must be positive"))
	assert.Equal(t, 400, status)
	assert.Equal(t, errors.CodeInvalidInput, body.Code)
	assert.Equal(t, "limit must be positive", body.Error)

	status, body = ErrorBody(assert.AnError)
	assert.Equal(t, 500, status)
	assert.Equal(t, errors.CodeInternalError, body.Code)
}
