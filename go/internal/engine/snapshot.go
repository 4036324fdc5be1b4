package engine

import (
	"time"

	"github.com/mcdev12/matchday/go/internal/countdown"
	"github.com/mcdev12/matchday/go/internal/livefeed"
	"github.com/mcdev12/matchday/go/internal/models"
	"github.com/mcdev12/matchday/go/internal/phase"
	"github.com/mcdev12/matchday/go/internal/schedule"
)

// Snapshot is everything a consumer may show for one tick. Snapshots are
// shared between consumers and must not be modified.
type Snapshot struct {
	MatchID    string                 `json:"match_id"`
	Tick       uint64                 `json:"tick"`
	At         time.Time              `json:"at"`
	Mode       string                 `json:"mode"`
	Resolved   bool                   `json:"resolved"`
	Kickoff    *time.Time             `json:"kickoff,omitempty"`
	Source     string                 `json:"source,omitempty"`
	Temporal   *models.TemporalState  `json:"temporal,omitempty"`
	Score      *models.ScoreState     `json:"score,omitempty"`
	Countdown  *models.CountdownState `json:"countdown,omitempty"`
	Colors     *countdown.ColorPair   `json:"colors,omitempty"`
	Status     models.MatchStatus     `json:"status,omitempty"`
	Display    string                 `json:"display,omitempty"`
	HalfLabel  string                 `json:"half_label,omitempty"`
	IsLive     bool                   `json:"is_live"`
	IsFinished bool                   `json:"is_finished"`
}

// compute builds the snapshot for one tick. The classifier (inside the
// timeline) runs before the projector, and both before the countdown.
func compute(matchID string, tick Tick, res schedule.Resolution, tl Timeline) *Snapshot {
	snap := &Snapshot{
		MatchID: matchID,
		Tick:    tick.N,
		At:      tick.At,
		Mode:    tl.Mode(),
	}
	if !res.Resolved {
		return snap
	}

	kickoff := res.Kickoff
	snap.Resolved = true
	snap.Kickoff = &kickoff
	snap.Source = res.Source.String()

	p := tl.project(kickoff, tick.At)
	snap.Temporal = &p.temporal
	snap.Score = &p.score
	snap.Status = p.status
	snap.Display = phase.Display(p.temporal)
	snap.HalfLabel = phase.HalfLabel(p.temporal)

	if cd := countdown.Calculate(kickoff, tick.At); cd != nil {
		snap.Countdown = cd
		if cd.Kind == models.CountdownClock {
			colors := countdown.Palette(cd.Tier)
			snap.Colors = &colors
		}
	}

	switch p.temporal.Phase {
	case models.PhaseFirstHalf, models.PhaseHalfTime, models.PhaseSecondHalf:
		snap.IsLive = true
	case models.PhaseFullTime:
		snap.IsFinished = true
	}
	if p.authoritative {
		snap.IsLive = livefeed.IsLive(p.status)
		snap.IsFinished = livefeed.IsFinished(p.status)
	}
	return snap
}

// Changed reports whether anything a viewer would notice beyond the running
// clock differs between a and b.
func Changed(a, b *Snapshot) bool {
	if a == nil || b == nil {
		return a != b
	}
	if a.Resolved != b.Resolved || a.Status != b.Status || a.IsFinished != b.IsFinished {
		return true
	}
	if (a.Temporal == nil) != (b.Temporal == nil) {
		return true
	}
	if a.Temporal != nil {
		if a.Temporal.Phase != b.Temporal.Phase || a.Temporal.Minute != b.Temporal.Minute {
			return true
		}
		if !equalInt(a.Temporal.ExtraTime, b.Temporal.ExtraTime) {
			return true
		}
	}
	if a.Score != nil && b.Score != nil {
		if a.Score.Home != b.Score.Home || a.Score.Away != b.Score.Away {
			return true
		}
	}
	return false
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
