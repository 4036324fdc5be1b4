package football_api_client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/matchday/go/clients"
	"github.com/mcdev12/matchday/go/internal/models"
)

const liveFixtureJSON = `{
  "get": "fixtures",
  "parameters": {"id": "1035037"},
  "errors": [],
  "results": 1,
  "response": [{
    "fixture": {
      "id": 1035037,
      "timezone": "UTC",
      "date": "2026-06-11T19:00:00+00:00",
      "timestamp": 1781204400,
      "venue": {"id": 556, "name": "Estadio Azteca", "city": "Mexico City"},
      "status": {"long": "Second Half", "short": "2H", "elapsed": 63}
    },
    "league": {"id": 1, "name": "World Cup", "season": 2026, "round": "Group A - 1"},
    "teams": {"home": {"id": 16, "name": "Mexico"}, "away": {"id": 1530, "name": "South Africa"}},
    "goals": {"home": 2, "away": 1}
  }]
}`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get(APIKeyHeader))
		assert.Equal(t, FixturesEndpoint, r.URL.Path)
		assert.Equal(t, "1035037", r.URL.Query().Get("id"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetFixture(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, liveFixtureJSON)
	client := NewFootballApiClientWithURL(srv.URL, "test-key")

	f, err := client.GetFixture(context.Background(), "1035037")
	require.NoError(t, err)

	assert.Equal(t, "1035037", f.ID)
	assert.Equal(t, "Mexico", f.HomeTeam)
	assert.Equal(t, "South Africa", f.AwayTeam)
	assert.Equal(t, "Estadio Azteca", f.Venue)
	assert.Equal(t, int64(1781204400), f.Timestamp)
	assert.Equal(t, "2026-06-11T19:00:00+00:00", f.Date)
	assert.Equal(t, models.StatusSecondHalf, f.Status)
	require.NotNil(t, f.Elapsed)
	assert.Equal(t, 63, *f.Elapsed)
	require.NotNil(t, f.HomeGoals)
	assert.Equal(t, 2, *f.HomeGoals)
	assert.False(t, f.Mock)
}

func TestGetFixture_NotFound(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"errors": [], "results": 0, "response": []}`)
	client := NewFootballApiClientWithURL(srv.URL, "test-key")

	_, err := client.GetFixture(context.Background(), "1035037")

	assert.ErrorIs(t, err, ErrFixtureNotFound)
}

func TestGetFixture_APIErrors(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"errors": {"token": "Error/Missing application key"}, "response": []}`)
	client := NewFootballApiClientWithURL(srv.URL, "test-key")

	_, err := client.GetFixture(context.Background(), "1035037")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API returned errors")
}

func TestGetFixture_HTTPStatus(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, `rate limited`)
	client := NewFootballApiClientWithURL(srv.URL, "test-key")

	_, err := client.GetFixture(context.Background(), "1035037")

	var apiErr *clients.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestMapStatus(t *testing.T) {
	tests := map[string]models.MatchStatus{
		"NS":   models.StatusNotStarted,
		"1H":   models.StatusFirstHalf,
		"HT":   models.StatusHalfTime,
		"ET":   models.StatusExtraTime,
		"P":    models.StatusPenalties,
		"PEN":  models.StatusPenaltiesDecided,
		"WO":   models.StatusWalkover,
		"SUSP": models.StatusUnknown,
		"":     models.StatusUnknown,
	}
	for code, want := range tests {
		assert.Equal(t, want, MapStatus(code), code)
	}
}
