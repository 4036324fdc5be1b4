package fixtures

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/matchday/go/internal/fixtures/db"
	"github.com/mcdev12/matchday/go/internal/models"
)

var fixtureColumns = []string{
	"id", "home_team", "away_team", "venue", "league",
	"kickoff_ts", "kickoff_date", "is_mock", "events", "updated_at",
}

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewRepository(db.New(conn)), mock
}

func TestRepository_GetFixture(t *testing.T) {
	repo, mock := newMockRepository(t)
	updated := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fixtures WHERE id = $1")).
		WithArgs("1035").
		WillReturnRows(sqlmock.NewRows(fixtureColumns).AddRow(
			"1035", "Mexico", "South Africa", "Estadio Azteca", nil,
			int64(1781204400), "2026-06-11T19:00:00Z", false,
			[]byte(`[{"minute":30,"type":"Goal","side":"home"}]`), updated,
		))

	f, err := repo.GetFixture(context.Background(), "1035")
	require.NoError(t, err)
	assert.Equal(t, "Mexico", f.HomeTeam)
	assert.Equal(t, "Estadio Azteca", f.Venue)
	assert.Empty(t, f.League)
	assert.Equal(t, int64(1781204400), f.Timestamp)
	assert.Equal(t, "2026-06-11T19:00:00Z", f.Date)
	assert.False(t, f.Mock)
	assert.Equal(t, []models.MatchEvent{{MinuteOffset: 30, Type: models.EventTypeGoal, Side: models.SideHome}}, f.Events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetFixture_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fixtures WHERE id = $1")).
		WithArgs("404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetFixture(context.Background(), "404")
	assert.ErrorIs(t, err, ErrFixtureNotFound)
}

func TestRepository_GetFixture_QueryError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fixtures WHERE id = $1")).
		WithArgs("1").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetFixture(context.Background(), "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFixtureNotFound)
}

func TestRepository_MalformedEventsGiveEmptyTimeline(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fixtures WHERE id = $1")).
		WithArgs("9").
		WillReturnRows(sqlmock.NewRows(fixtureColumns).AddRow(
			"9", "A", "B", nil, nil, nil, nil, true, []byte(`{"not":"a list"}`), time.Now(),
		))

	f, err := repo.GetFixture(context.Background(), "9")
	require.NoError(t, err)
	assert.True(t, f.Mock)
	assert.Zero(t, f.Timestamp)
	assert.Empty(t, f.Date)
	assert.Empty(t, f.Events)
}

func TestRepository_ListFixtures(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY kickoff_ts NULLS LAST, id")).
		WillReturnRows(sqlmock.NewRows(fixtureColumns).
			AddRow("1", "A", "B", nil, nil, int64(100), nil, false, nil, time.Now()).
			AddRow("2", "C", "D", nil, nil, nil, "2026-06-12 18:00:00", true, nil, time.Now()))

	list, err := repo.ListFixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "2026-06-12 18:00:00", list[1].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveFixture(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fixtures")).
		WithArgs("77", "Home", "Away", "Wembley", nil, int64(1781204400), nil, true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(fixtureColumns).AddRow(
			"77", "Home", "Away", "Wembley", nil, int64(1781204400), nil, true,
			[]byte(`[{"minute":5,"type":"Goal","side":"away"}]`), time.Now(),
		))

	saved, err := repo.SaveFixture(context.Background(), models.Fixture{
		ID:        "77",
		HomeTeam:  "Home",
		AwayTeam:  "Away",
		Venue:     "Wembley",
		Timestamp: 1781204400,
		Mock:      true,
		Events:    []models.MatchEvent{{MinuteOffset: 5, Type: models.EventTypeGoal, Side: models.SideAway}},
	})
	require.NoError(t, err)
	assert.Len(t, saved.Events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveFixture_Invalid(t *testing.T) {
	repo, _ := newMockRepository(t)

	_, err := repo.SaveFixture(context.Background(), models.Fixture{ID: "1"})
	assert.ErrorIs(t, err, ErrInvalidFixture)
}
