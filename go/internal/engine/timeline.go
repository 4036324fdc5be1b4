package engine

import (
	"context"
	"time"

	"github.com/mcdev12/matchday/go/internal/livefeed"
	"github.com/mcdev12/matchday/go/internal/models"
	"github.com/mcdev12/matchday/go/internal/phase"
	"github.com/mcdev12/matchday/go/internal/score"
)

// Timeline decides where a match's clock and score come from. It is chosen
// once when the session opens: Mock replays a scripted ledger, Live defers
// to the fixtures feed.
type Timeline interface {
	Mode() string
	project(kickoff, now time.Time) projection
}

type projection struct {
	temporal      models.TemporalState
	score         models.ScoreState
	status        models.MatchStatus
	authoritative bool
}

// Mock is a demo match whose whole timeline is local.
type Mock struct {
	Ledger models.Ledger
}

func (Mock) Mode() string { return "mock" }

func (m Mock) project(kickoff, now time.Time) projection {
	st := phase.Classify(kickoff, now)
	return projection{
		temporal: st,
		score:    score.Project(m.Ledger, st),
	}
}

// Feed supplies the latest authoritative report for a live match.
type Feed interface {
	Latest() *livefeed.Report
}

// Live is a real match backed by the fixtures feed.
type Live struct {
	Feed Feed
}

func (Live) Mode() string { return "live" }

// project uses the feed when it has an authoritative status. Until then the
// clock is derived from kickoff and the score stays at zero; the ledger
// projector is never used for live matches.
func (l Live) project(kickoff, now time.Time) projection {
	var report *livefeed.Report
	if l.Feed != nil {
		report = l.Feed.Latest()
	}
	if st, sc, ok := livefeed.Override(report); ok {
		return projection{temporal: st, score: sc, status: report.Status, authoritative: true}
	}
	return projection{temporal: phase.Classify(kickoff, now)}
}

// runner is implemented by feeds that need a background loop for the
// lifetime of the session.
type runner interface {
	Run(ctx context.Context)
}

func (l Live) run(ctx context.Context) {
	if r, ok := l.Feed.(runner); ok {
		r.Run(ctx)
	}
}
