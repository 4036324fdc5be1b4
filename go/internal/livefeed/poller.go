package livefeed

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/models"
)

// DefaultPollInterval is how often a live fixture is refreshed.
const DefaultPollInterval = 15 * time.Second

// FixtureFetcher is what the poller needs from the fixtures API client.
type FixtureFetcher interface {
	GetFixture(ctx context.Context, fixtureID string) (*models.Fixture, error)
}

// Poller keeps the latest report for one live match.
type Poller struct {
	matchID  string
	fetcher  FixtureFetcher
	clock    clockwork.Clock
	interval time.Duration

	latest atomic.Pointer[Report]
}

// NewPoller creates a poller. A non-positive interval uses DefaultPollInterval.
func NewPoller(matchID string, fetcher FixtureFetcher, clock clockwork.Clock, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Poller{
		matchID:  matchID,
		fetcher:  fetcher,
		clock:    clock,
		interval: interval,
	}
}

// Latest returns the most recent successful report, or nil before the first one.
func (p *Poller) Latest() *Report {
	return p.latest.Load()
}

// Seed stores a report obtained elsewhere, e.g. the fixture fetched while
// resolving the kickoff. It never replaces a report the poller already holds.
func (p *Poller) Seed(r *Report) {
	if r != nil {
		p.latest.CompareAndSwap(nil, r)
	}
}

// Run polls immediately and then on every interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("match_id", p.matchID).Msg("live feed poller stopped")
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	f, err := p.fetcher.GetFixture(ctx, p.matchID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Str("match_id", p.matchID).Msg("live feed poll failed, keeping last report")
		return
	}

	reading := ReportFromFixture(f, p.clock.Now())
	prev := p.latest.Load()
	r := Merge(prev, reading)
	p.latest.Store(r)

	if !reading.Authoritative() && r != reading {
		log.Warn().
			Str("match_id", p.matchID).
			Str("status", string(r.Status)).
			Msg("live feed sent an unmapped status, keeping last known phase")
	}
	if prev == nil || prev.Status != r.Status {
		log.Info().
			Str("match_id", p.matchID).
			Str("status", string(r.Status)).
			Msg("live feed status")
	}
}
