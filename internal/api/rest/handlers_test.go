package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortuna/dugout/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	weeklyRuns atomic.Int32
}

func (s *stubRunner) WeeklyUpdate(context.Context) error {
	s.weeklyRuns.Add(1)
	return nil
}

func (s *stubRunner) FullWeeklyUpdate(context.Context) error { return nil }
func (s *stubRunner) PlayerDataSetup(context.Context) error  { return nil }

func newTestServer(t *testing.T) (*Server, *store.Archive, *stubRunner) {
	t.Helper()
	archive := store.NewArchive(t.TempDir(), 2024)
	runner := &stubRunner{}
	return NewServer("0", archive, runner, 2024), archive, runner
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestGetStandings(t *testing.T) {
	s, archive, _ := newTestServer(t)

	require.NoError(t, archive.SaveStandings(2024, []store.Standing{
		{Rank: 1, Manager: "Ryan", Wins: 14},
	}))
	require.NoError(t, archive.SaveStandings(2023, []store.Standing{
		{Rank: 1, Manager: "Sam", Wins: 13},
	}))

	// default season
	rec := doRequest(s, http.MethodGet, "/api/v1/standings")
	require.Equal(t, http.StatusOK, rec.Code)
	var standings []store.Standing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &standings))
	require.Len(t, standings, 1)
	assert.Equal(t, "Ryan", standings[0].Manager)

	// explicit historical season
	rec = doRequest(s, http.MethodGet, "/api/v1/standings?season=2023")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &standings))
	assert.Equal(t, "Sam", standings[0].Manager)

	// never collected
	rec = doRequest(s, http.MethodGet, "/api/v1/standings?season=2018")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/standings?season=nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnmatchedPlayersEmptyIsOK(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/players/unmatched")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetCareerByName(t *testing.T) {
	s, archive, _ := newTestServer(t)

	require.NoError(t, archive.SaveCareers(map[string]store.PlayerCareer{
		"jose ramirez": {Name: "José Ramírez", CareerFantasyPoints: 812.4},
	}))

	// lookup normalizes the path segment, accents and case included
	rec := doRequest(s, http.MethodGet, "/api/v1/careers/José%20Ramírez")
	require.Equal(t, http.StatusOK, rec.Code)

	var career store.PlayerCareer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &career))
	assert.Equal(t, "José Ramírez", career.Name)

	rec = doRequest(s, http.MethodGet, "/api/v1/careers/Nobody%20Here")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTriggerCollection(t *testing.T) {
	s, _, runner := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/v1/collect?mode=weekly")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	// the run happens in the background
	assert.Eventually(t, func() bool {
		return runner.weeklyRuns.Load() == 1
	}, time.Second, 10*time.Millisecond)

	rec = doRequest(s, http.MethodPost, "/api/v1/collect?mode=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
