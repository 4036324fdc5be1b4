package fixtures

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/matchday/go/internal/engine"
	"github.com/mcdev12/matchday/go/internal/models"
	"github.com/mcdev12/matchday/go/internal/schedule"
)

type memRepo struct {
	mu       sync.Mutex
	fixtures map[string]models.Fixture
	err      error
}

func newMemRepo(fs ...models.Fixture) *memRepo {
	r := &memRepo{fixtures: make(map[string]models.Fixture)}
	for _, f := range fs {
		r.fixtures[f.ID] = f
	}
	return r
}

func (r *memRepo) GetFixture(_ context.Context, id string) (*models.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	f, ok := r.fixtures[id]
	if !ok {
		return nil, ErrFixtureNotFound
	}
	return &f, nil
}

func (r *memRepo) ListFixtures(context.Context) ([]models.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Fixture
	for _, f := range r.fixtures {
		out = append(out, f)
	}
	return out, r.err
}

func (r *memRepo) SaveFixture(_ context.Context, f models.Fixture) (*models.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fixtures[f.ID] = f
	return &f, nil
}

type stubFeed struct {
	fixture *models.Fixture
	err     error
}

func (s stubFeed) GetFixture(context.Context, string) (*models.Fixture, error) {
	return s.fixture, s.err
}

func intp(n int) *int { return &n }

var anchor = time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC)

func TestSpec_DemoMatch(t *testing.T) {
	clock := clockwork.NewFakeClockAt(anchor)
	app := NewApp(nil, nil, clock, schedule.NewDemoKickoffs(anchor), []DemoMatch{{
		ID:            "demo-1",
		HomeTeam:      "Reds",
		AwayTeam:      "Blues",
		KickoffOffset: -30 * time.Minute,
		Events:        []models.MatchEvent{{MinuteOffset: 10, Type: models.EventTypeGoal, Side: models.SideHome}},
	}}, Config{})

	spec, err := app.Spec(context.Background(), "demo-1")
	require.NoError(t, err)
	assert.Equal(t, "mock", spec.Timeline.Mode())

	mock, ok := spec.Timeline.(engine.Mock)
	require.True(t, ok)
	assert.Equal(t, 1, mock.Ledger.Len())

	kickoff, kind, ok := schedule.First(context.Background(), spec.Sources)
	require.True(t, ok)
	assert.Equal(t, schedule.SourceFallback, kind)
	assert.True(t, kickoff.Equal(anchor.Add(-30*time.Minute)))
}

func TestSpec_StoredMockPrefersPreloadedKickoff(t *testing.T) {
	stored := models.Fixture{ID: "7", HomeTeam: "A", AwayTeam: "B", Timestamp: anchor.Unix(), Mock: true,
		Events: []models.MatchEvent{{MinuteOffset: 3, Side: models.SideAway}}}
	app := NewApp(newMemRepo(stored), nil, clockwork.NewFakeClockAt(anchor), nil, nil, Config{})

	spec, err := app.Spec(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "mock", spec.Timeline.Mode())

	_, kind, ok := schedule.First(context.Background(), spec.Sources)
	require.True(t, ok)
	assert.Equal(t, schedule.SourcePreloadedTimestamp, kind)
}

func TestSpec_LiveMatchSeedsPollerAndRemembersFixture(t *testing.T) {
	repo := newMemRepo()
	feed := stubFeed{fixture: &models.Fixture{
		ID: "1035", HomeTeam: "Mexico", AwayTeam: "South Africa",
		Timestamp: anchor.Unix(), Status: models.StatusFirstHalf,
		Elapsed: intp(23), HomeGoals: intp(1), AwayGoals: intp(0),
	}}
	app := NewApp(repo, feed, clockwork.NewFakeClockAt(anchor), nil, nil, Config{RememberFetched: true})

	spec, err := app.Spec(context.Background(), "1035")
	require.NoError(t, err)
	live, ok := spec.Timeline.(engine.Live)
	require.True(t, ok)
	assert.Nil(t, live.Feed.Latest())

	_, kind, ok := schedule.First(context.Background(), spec.Sources)
	require.True(t, ok)
	assert.Equal(t, schedule.SourceFetchedTimestamp, kind)

	report := live.Feed.Latest()
	require.NotNil(t, report)
	assert.Equal(t, models.StatusFirstHalf, report.Status)

	_, err = repo.GetFixture(context.Background(), "1035")
	assert.NoError(t, err)
}

func TestSpec_StoredLiveWithoutFeed(t *testing.T) {
	stored := models.Fixture{ID: "8", HomeTeam: "A", AwayTeam: "B", Date: "2026-06-11T19:00:00Z"}
	app := NewApp(newMemRepo(stored), nil, nil, nil, nil, Config{})

	spec, err := app.Spec(context.Background(), "8")
	require.NoError(t, err)
	assert.Equal(t, "live", spec.Timeline.Mode())

	_, kind, ok := schedule.First(context.Background(), spec.Sources)
	require.True(t, ok)
	assert.Equal(t, schedule.SourcePreloadedDate, kind)
}

func TestSpec_Errors(t *testing.T) {
	app := NewApp(newMemRepo(), nil, nil, nil, nil, Config{})

	_, err := app.Spec(context.Background(), "")
	assert.ErrorIs(t, err, engine.ErrEmptyMatchID)

	_, err = app.Spec(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrFixtureNotFound)

	broken := newMemRepo()
	broken.err = errors.New("db down")
	app = NewApp(broken, nil, nil, nil, nil, Config{})
	_, err = app.Spec(context.Background(), "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFixtureNotFound)
}

func TestCatalog(t *testing.T) {
	repo := newMemRepo(
		models.Fixture{ID: "stored", HomeTeam: "C", AwayTeam: "D"},
		models.Fixture{ID: "demo-b", HomeTeam: "shadowed", AwayTeam: "shadowed"},
	)
	app := NewApp(repo, nil, clockwork.NewFakeClockAt(anchor), schedule.NewDemoKickoffs(anchor), []DemoMatch{
		{ID: "demo-b", HomeTeam: "E", AwayTeam: "F", KickoffOffset: time.Hour},
		{ID: "demo-a", HomeTeam: "A", AwayTeam: "B", KickoffOffset: -time.Hour},
	}, Config{})

	list, err := app.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "demo-a", list[0].ID)
	assert.Equal(t, "demo-b", list[1].ID)
	assert.Equal(t, "E", list[1].HomeTeam)
	assert.Equal(t, anchor.Add(time.Hour).Unix(), list[1].Timestamp)
	assert.Equal(t, "stored", list[2].ID)
}
