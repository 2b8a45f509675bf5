package ui

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marquee/internal/errors"
	"marquee/ui/services"
)

func TestAPI_Rankings(t *testing.T) {
	api := NewAPI(newTestExplorer(staticLoader{rows: fixtureRows()}), quietLogger())

	w := serve(api, http.MethodGet, "/api/rankings?limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body services.RankingsPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Ranking, 2)
	assert.Equal(t, "Hamilton", body.Ranking[0].Show)
	assert.Equal(t, "Wicked", body.Ranking[1].Show)
	assert.Empty(t, body.Note)
}

func TestAPI_MatchesServer(t *testing.T) {
	explorer := newTestExplorer(staticLoader{rows: fixtureRows()})
	api := NewAPI(explorer, quietLogger())
	s, err := NewServer(explorer, quietLogger())
	require.NoError(t, err)

	for _, target := range []string{
		"/api/rows?show=Wicked",
		"/api/shows",
		"/api/summary?start=2021-01-08",
		"/api/rankings?metric=gross&direction=bottom",
	} {
		fromAPI := serve(api, http.MethodGet, target)
		fromServer := serve(s.Handler(), http.MethodGet, target)
		require.Equal(t, http.StatusOK, fromAPI.Code, target)
		assert.JSONEq(t, fromServer.Body.String(), fromAPI.Body.String(), target)
	}
}

func TestAPI_InvalidParams(t *testing.T) {
	api := NewAPI(newTestExplorer(staticLoader{rows: fixtureRows()}), quietLogger())

	w := serve(api, http.MethodGet, "/api/rows?direction=sideways")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body services.ErrorPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeInvalidInput, body.Code)
}

func TestAPI_ReloadAndHealth(t *testing.T) {
	api := NewAPI(newTestExplorer(staticLoader{rows: fixtureRows()}), quietLogger())

	w := serve(api, http.MethodPost, "/api/reload")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(api, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
