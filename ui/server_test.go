package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"marquee/domain/show"
	"marquee/internal"
	"marquee/internal/config"
	"marquee/internal/dataset"
	"marquee/internal/errors"
	"marquee/ui/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticLoader struct {
	rows []show.RawRecord
	err  error
}

func (l staticLoader) LoadRaw(ctx context.Context) (dataset.LoadResult, error) {
	if l.err != nil {
		return dataset.LoadResult{}, l.err
	}
	return dataset.LoadResult{Rows: l.rows, Source: "static", SnapshotID: uuid.New()}, nil
}

func fixtureRows() []show.RawRecord {
	return []show.RawRecord{
		{Date: "2021-01-01", Show: "Hamilton", WeeklyGross: "$100.00", Performances: "8"},
		{Date: "2021-01-08", Show: "Hamilton", WeeklyGross: "$200.00", Performances: "8"},
		{Date: "2021-01-08", Show: "Wicked", WeeklyGross: "$300.00", Performances: "7"},
		{Date: "2021-01-15", Show: "Cats", WeeklyGross: "$0.00", Performances: "0"},
		{Date: "2021-01-15", Show: "Wicked", WeeklyGross: "$50.00", Performances: "8"},
	}
}

func quietLogger() *internal.Logger {
	return internal.NewLoggerWithZap(internal.LogLevelError, zap.NewNop())
}

func newTestExplorer(loader dataset.Loader) *services.Explorer {
	store := dataset.NewStore(loader, quietLogger())
	return services.NewExplorer(store, config.ExplorerConfig{DefaultLimit: 10, MaxLimit: 30})
}

func newTestServer(t *testing.T, loader dataset.Loader) *Server {
	t.Helper()
	s, err := NewServer(newTestExplorer(loader), quietLogger())
	require.NoError(t, err)
	return s
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Index(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	w := serve(s.Handler(), http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Broadway Explorer</h1>")
	assert.Contains(t, body, "Rows in table: 5")
	assert.Contains(t, body, "Hamilton")
	assert.Contains(t, body, "Total Number of Performances")
	assert.Contains(t, body, `value="2021-01-01"`)
	assert.NotContains(t, body, "Bottom performance rankings exclude")
}

func TestServer_IndexGroupsRowCount(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]show.RawRecord, 1234)
	for i := range rows {
		rows[i] = show.RawRecord{
			Date:         start.AddDate(0, 0, i).Format(show.ISODateLayout),
			Show:         "Hamilton",
			WeeklyGross:  "$100.00",
			Performances: "8",
		}
	}
	s := newTestServer(t, staticLoader{rows: rows})

	w := serve(s.Handler(), http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rows in table: 1,234")
}

func TestServer_IndexShowFilter(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	w := serve(s.Handler(), http.MethodGet, "/?show=Wicked&direction=bottom")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Rows in table: 2")
	assert.Contains(t, body, "Bottom performance rankings exclude")
}

func TestServer_IndexInvalidParams(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	w := serve(s.Handler(), http.MethodGet, "/?limit=99")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "limit must be an integer between 1 and 30")
	assert.Contains(t, body, "Rows in table: 5")
}

func TestServer_Rows(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	w := serve(s.Handler(), http.MethodGet, "/api/rows?show=Hamilton")
	require.Equal(t, http.StatusOK, w.Code)

	var table struct {
		Show     string `json:"show"`
		RowCount int    `json:"row_count"`
		Rows     []struct {
			Date string `json:"date"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Equal(t, "Hamilton", table.Show)
	assert.Equal(t, 2, table.RowCount)
	assert.Len(t, table.Rows, 2)
}

func TestServer_Rankings(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	w := serve(s.Handler(), http.MethodGet, "/api/rankings?metric=gross&direction=bottom&limit=5")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Metric  string `json:"metric"`
		Ranking []struct {
			Rank       int     `json:"rank"`
			Show       string  `json:"show"`
			TotalGross float64 `json:"total_gross"`
		} `json:"ranking"`
		Chart struct {
			Height int `json:"height"`
		} `json:"chart"`
		Note string `json:"note"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "gross", body.Metric)
	require.Len(t, body.Ranking, 2)
	assert.Equal(t, "Hamilton", body.Ranking[0].Show)
	assert.Equal(t, 1, body.Ranking[0].Rank)
	assert.Equal(t, "Wicked", body.Ranking[1].Show)
	assert.Equal(t, 60, body.Chart.Height)
	assert.Contains(t, body.Note, "Bottom gross rankings exclude")
}

func TestServer_RejectsInvalidParams(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	for _, target := range []string{
		"/api/rankings?start=2021-02-01&end=2021-01-01",
		"/api/rankings?metric=revenue",
		"/api/rows?start=not-a-date",
		"/api/shows?limit=0",
	} {
		w := serve(s.Handler(), http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)

		var body services.ErrorPayload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), target)
		assert.Equal(t, errors.CodeInvalidInput, body.Code, target)
		assert.NotEmpty(t, body.Error, target)
	}
}

func TestServer_ShowsAndWindow(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	w := serve(s.Handler(), http.MethodGet, "/api/shows?start=2021-01-08&end=2021-01-08")
	require.Equal(t, http.StatusOK, w.Code)
	var shows struct {
		Shows []string `json:"shows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shows))
	assert.Equal(t, []string{show.AllShows, "Hamilton", "Wicked"}, shows.Shows)

	w = serve(s.Handler(), http.MethodGet, "/api/window")
	require.Equal(t, http.StatusOK, w.Code)
	var window services.WindowPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &window))
	assert.Equal(t, "2021-01-01", window.Dataset.MinDate)
	assert.Equal(t, "2021-01-15", window.Dataset.MaxDate)
	assert.Equal(t, "static", window.Dataset.Source)
}

func TestServer_Summary(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	w := serve(s.Handler(), http.MethodGet, "/api/summary?show=Wicked")
	require.Equal(t, http.StatusOK, w.Code)

	var body services.SummaryPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Summary.Rows)
	assert.InDelta(t, 350.0, body.Summary.TotalGross, 1e-9)
	assert.Equal(t, "US$0.00M", body.Formatted["total_gross"])
}

func TestServer_RankingsXLSX(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	w := serve(s.Handler(), http.MethodGet, "/api/rankings.xlsx?direction=bottom")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bottom-10-performances.xlsx")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ranking")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, "Rank", rows[0][0])
	assert.Equal(t, "Wicked", rows[1][1])
	assert.Contains(t, rows[4][0], "Bottom performance rankings exclude")
}

func TestServer_ReloadAndHealth(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	w := serve(s.Handler(), http.MethodPost, "/api/reload")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"static"`)

	w = serve(s.Handler(), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServer_UnavailableSource(t *testing.T) {
	for _, cause := range []error{
		assert.AnError,
		errors.NotFound("CSV file shows.csv"),
		errors.InvalidInputf("missing required columns: SHOW"),
	} {
		s := newTestServer(t, staticLoader{err: cause})

		w := serve(s.Handler(), http.MethodGet, "/api/rows")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, cause.Error())

		var body services.ErrorPayload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, errors.CodeUnavailable, body.Code)
		assert.Contains(t, body.Error, cause.Error())
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, staticLoader{rows: fixtureRows()})

	w := serve(s.Handler(), http.MethodGet, "/healthz")
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
