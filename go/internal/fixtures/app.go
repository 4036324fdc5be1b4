// Package fixtures knows which matches exist and how each one should be
// driven: stored and demo fixtures, the fixtures feed, and the choice
// between a scripted and a live timeline.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/engine"
	"github.com/mcdev12/matchday/go/internal/livefeed"
	"github.com/mcdev12/matchday/go/internal/models"
	"github.com/mcdev12/matchday/go/internal/schedule"
)

// FixturesRepository defines what the app layer needs from the repository
type FixturesRepository interface {
	GetFixture(ctx context.Context, id string) (*models.Fixture, error)
	ListFixtures(ctx context.Context) ([]models.Fixture, error)
	SaveFixture(ctx context.Context, f models.Fixture) (*models.Fixture, error)
}

// DemoMatch is a scripted match from the demo catalogue. Its kickoff is
// KickoffOffset after the process anchor.
type DemoMatch struct {
	ID            string
	HomeTeam      string
	AwayTeam      string
	KickoffOffset time.Duration
	Events        []models.MatchEvent
}

// Config tunes the App.
type Config struct {
	PollInterval time.Duration
	// RememberFetched stores fixtures fetched from the feed so later views
	// resolve from the preloaded record.
	RememberFetched bool
}

// App handles fixture lookup and match view construction
type App struct {
	repo  FixturesRepository
	feed  livefeed.FixtureFetcher
	clock clockwork.Clock
	demo  *schedule.DemoKickoffs
	demos map[string]DemoMatch
	cfg   Config
}

// NewApp creates a new fixtures App. repo and feed may be nil; without
// them only demo matches can be opened.
func NewApp(repo FixturesRepository, feed livefeed.FixtureFetcher, clock clockwork.Clock, demo *schedule.DemoKickoffs, matches []DemoMatch, cfg Config) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if demo == nil {
		demo = schedule.NewDemoKickoffs(clock.Now())
	}

	demos := make(map[string]DemoMatch, len(matches))
	for _, m := range matches {
		demos[m.ID] = m
		demo.Register(m.ID, m.KickoffOffset)
	}

	return &App{
		repo:  repo,
		feed:  feed,
		clock: clock,
		demo:  demo,
		demos: demos,
		cfg:   cfg,
	}
}

// Spec builds the view description for matchID: the kickoff candidates in
// precedence order and a mock or live timeline.
func (a *App) Spec(ctx context.Context, matchID string) (engine.MatchSpec, error) {
	if matchID == "" {
		return engine.MatchSpec{}, engine.ErrEmptyMatchID
	}

	stored, err := a.stored(ctx, matchID)
	if err != nil {
		return engine.MatchSpec{}, err
	}

	spec := engine.MatchSpec{MatchID: matchID}

	if demo, ok := a.demos[matchID]; ok {
		spec.Sources = schedule.Candidates(matchID, stored, nil, a.demo.Kickoff)
		spec.Timeline = engine.Mock{Ledger: models.NewLedger(demo.Events)}
		return spec, nil
	}

	if stored != nil && stored.Mock {
		spec.Sources = schedule.Candidates(matchID, stored, nil, a.demo.Kickoff)
		spec.Timeline = engine.Mock{Ledger: models.NewLedger(stored.Events)}
		return spec, nil
	}

	if a.feed != nil {
		poller := livefeed.NewPoller(matchID, a.feed, a.clock, a.cfg.PollInterval)
		spec.Sources = schedule.Candidates(matchID, stored, a.fetchFunc(matchID, poller), nil)
		spec.Timeline = engine.Live{Feed: poller}
		return spec, nil
	}

	if stored != nil {
		spec.Sources = schedule.Candidates(matchID, stored, nil, nil)
		spec.Timeline = engine.Live{}
		return spec, nil
	}

	return engine.MatchSpec{}, fmt.Errorf("%w: %s", ErrFixtureNotFound, matchID)
}

// fetchFunc loads the fixture from the feed while resolving the kickoff. The
// result also seeds the live poller so the first tick already carries the
// feed status.
func (a *App) fetchFunc(matchID string, poller *livefeed.Poller) schedule.FetchFunc {
	return func(ctx context.Context) (*models.Fixture, error) {
		f, err := a.feed.GetFixture(ctx, matchID)
		if err != nil {
			return nil, err
		}
		poller.Seed(livefeed.ReportFromFixture(f, a.clock.Now()))

		if a.cfg.RememberFetched && a.repo != nil {
			if _, err := a.repo.SaveFixture(ctx, *f); err != nil {
				log.Warn().Err(err).Str("match_id", matchID).Msg("failed to store fetched fixture")
			}
		}
		return f, nil
	}
}

// stored returns the preloaded fixture, or nil when there is none. Storage
// failures are fatal for the request; a missing row is not.
func (a *App) stored(ctx context.Context, matchID string) (*models.Fixture, error) {
	if a.repo == nil {
		return nil, nil
	}
	f, err := a.repo.GetFixture(ctx, matchID)
	if errors.Is(err, ErrFixtureNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture %s: %w", matchID, err)
	}
	return f, nil
}

// Catalog lists every match that can be opened without the feed: demo
// matches first, then stored fixtures.
func (a *App) Catalog(ctx context.Context) ([]models.Fixture, error) {
	out := make([]models.Fixture, 0, len(a.demos))
	for _, m := range a.demos {
		f := models.Fixture{
			ID:       m.ID,
			HomeTeam: m.HomeTeam,
			AwayTeam: m.AwayTeam,
			Mock:     true,
			Events:   models.NewLedger(m.Events).Events(),
		}
		if kickoff, ok := a.demo.Kickoff(m.ID); ok {
			f.Timestamp = kickoff.Unix()
			f.Date = kickoff.UTC().Format(time.RFC3339)
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].ID < out[j].ID
	})

	if a.repo == nil {
		return out, nil
	}
	stored, err := a.repo.ListFixtures(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}
	for _, f := range stored {
		if _, ok := a.demos[f.ID]; ok {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
