// Package livefeed holds the authoritative match state reported by the
// fixtures feed for real matches, and the rule for applying it.
package livefeed

import (
	"time"

	"github.com/mcdev12/matchday/go/internal/models"
	"github.com/mcdev12/matchday/go/internal/phase"
)

// Report is the latest feed reading for one match.
type Report struct {
	MatchID   string             `json:"match_id"`
	Status    models.MatchStatus `json:"status"`
	Elapsed   *int               `json:"elapsed,omitempty"`
	Home      *int               `json:"home,omitempty"`
	Away      *int               `json:"away,omitempty"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// ReportFromFixture extracts the live fields of a fixture.
func ReportFromFixture(f *models.Fixture, at time.Time) *Report {
	return &Report{
		MatchID:   f.ID,
		Status:    f.Status,
		Elapsed:   f.Elapsed,
		Home:      f.HomeGoals,
		Away:      f.AwayGoals,
		FetchedAt: at,
	}
}

// Authoritative reports whether r carries a status the engine must honour.
func (r *Report) Authoritative() bool {
	return r != nil && r.Status != models.StatusUnknown
}

// Merge folds next into prev. A reading whose status cannot be mapped keeps
// the last authoritative status and only refreshes the minute and score it
// carries.
func Merge(prev, next *Report) *Report {
	if next == nil {
		return prev
	}
	if next.Authoritative() || !prev.Authoritative() {
		return next
	}
	merged := *prev
	merged.FetchedAt = next.FetchedAt
	if next.Elapsed != nil {
		merged.Elapsed = next.Elapsed
	}
	if next.Home != nil {
		merged.Home = next.Home
	}
	if next.Away != nil {
		merged.Away = next.Away
	}
	return &merged
}

// IsLive reports whether the status means the match is being played.
func IsLive(s models.MatchStatus) bool {
	switch s {
	case models.StatusFirstHalf, models.StatusHalfTime, models.StatusSecondHalf,
		models.StatusExtraTime, models.StatusBreakTime, models.StatusPenalties:
		return true
	}
	return false
}

// IsFinished reports whether the status is terminal.
func IsFinished(s models.MatchStatus) bool {
	switch s {
	case models.StatusFullTime, models.StatusAfterExtraTime,
		models.StatusPenaltiesDecided, models.StatusWalkover:
		return true
	}
	return false
}

// PhaseOf maps a feed status onto the engine's phases. Extra time, the break
// before it and penalties are shown as a continuation of the second half.
func PhaseOf(s models.MatchStatus) (models.Phase, bool) {
	switch s {
	case models.StatusNotStarted:
		return models.PhaseNotStarted, true
	case models.StatusFirstHalf:
		return models.PhaseFirstHalf, true
	case models.StatusHalfTime:
		return models.PhaseHalfTime, true
	case models.StatusSecondHalf, models.StatusExtraTime, models.StatusBreakTime, models.StatusPenalties:
		return models.PhaseSecondHalf, true
	case models.StatusFullTime, models.StatusAfterExtraTime, models.StatusPenaltiesDecided, models.StatusWalkover:
		return models.PhaseFullTime, true
	}
	return "", false
}

// Override converts an authoritative report into the clock and score the
// engine shows. ok is false when the report is not authoritative.
func Override(r *Report) (st models.TemporalState, sc models.ScoreState, ok bool) {
	if !r.Authoritative() {
		return st, sc, false
	}
	p, ok := PhaseOf(r.Status)
	if !ok {
		return st, sc, false
	}

	st.Phase = p
	elapsed := 0
	if r.Elapsed != nil {
		elapsed = *r.Elapsed
	}
	st.Elapsed = elapsed

	switch p {
	case models.PhaseNotStarted:
	case models.PhaseFirstHalf:
		st.Minute, st.ExtraTime = stoppage(elapsed, phase.HalfLength)
	case models.PhaseHalfTime:
		st.Minute = phase.HalfLength
	case models.PhaseSecondHalf:
		if r.Status == models.StatusSecondHalf {
			st.Minute, st.ExtraTime = stoppage(elapsed, phase.FullLength)
		} else {
			st.Minute = elapsed
		}
	case models.PhaseFullTime:
		st.Minute = phase.FullLength
		if elapsed > phase.FullLength {
			st.Minute = elapsed
		}
	}

	if r.Home != nil {
		sc.Home = *r.Home
	}
	if r.Away != nil {
		sc.Away = *r.Away
	}
	return st, sc, true
}

func stoppage(elapsed, limit int) (int, *int) {
	if elapsed <= limit {
		return elapsed, nil
	}
	extra := elapsed - limit
	return limit, &extra
}
