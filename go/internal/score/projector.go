// Package score replays a match ledger up to the current clock.
package score

import (
	"github.com/mcdev12/matchday/go/internal/models"
	"github.com/mcdev12/matchday/go/internal/phase"
)

// Project returns the score as of st. Goals count once their minute offset
// has been reached. Only use it for matches without an authoritative feed score.
func Project(ledger models.Ledger, st models.TemporalState) models.ScoreState {
	var out models.ScoreState
	if st.Phase == models.PhaseNotStarted {
		return out
	}

	finished := st.Phase == models.PhaseFullTime
	var ht models.HalfTimeScore

	ledger.Each(func(e models.MatchEvent) bool {
		if !finished && e.MinuteOffset > st.Elapsed {
			return false
		}
		if !e.IsGoal() {
			return true
		}
		switch e.Side {
		case models.SideHome:
			out.Home++
			if e.MinuteOffset <= phase.HalfLength {
				ht.Home++
			}
		case models.SideAway:
			out.Away++
			if e.MinuteOffset <= phase.HalfLength {
				ht.Away++
			}
		}
		return true
	})

	if halfTimeReached(st) {
		out.HalfTime = &ht
	}
	return out
}

func halfTimeReached(st models.TemporalState) bool {
	return st.Minute >= phase.HalfLength || st.Phase.Rank() > models.PhaseFirstHalf.Rank()
}
