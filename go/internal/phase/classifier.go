// Package phase turns the time elapsed since kickoff into the match clock:
// the phase, the displayed minute, stoppage time and a sub-minute salise.
package phase

import (
	"time"

	"github.com/mcdev12/matchday/go/internal/models"
)

// Boundaries of the match clock, in elapsed minutes since kickoff.
const (
	HalfLength         = 45
	FirstHalfStoppage  = 3
	SecondHalfStart    = 60
	FullLength         = 90
	SecondHalfStoppage = 4
	HardFullTime       = 112
)

// Classify computes the match clock for now. It does no caching and must be
// called on every tick.
func Classify(kickoff, now time.Time) models.TemporalState {
	elapsed, salise := split(now.Sub(kickoff))
	return classifyElapsed(elapsed, salise)
}

func classifyElapsed(elapsed, salise int) models.TemporalState {
	st := models.TemporalState{Elapsed: elapsed}

	switch {
	case elapsed < 0:
		st.Phase = models.PhaseNotStarted
	case elapsed >= HardFullTime:
		st.Phase = models.PhaseFullTime
		st.Minute = FullLength
		st.ExtraTime = extra(SecondHalfStoppage)
	case elapsed < HalfLength:
		st.Phase = models.PhaseFirstHalf
		st.Minute = elapsed
		st.Second = salise
	case elapsed <= HalfLength+FirstHalfStoppage:
		st.Phase = models.PhaseFirstHalf
		st.Minute = HalfLength
		st.ExtraTime = extra(elapsed - HalfLength)
		st.Second = salise
	case elapsed < SecondHalfStart:
		st.Phase = models.PhaseHalfTime
		st.Minute = HalfLength
		st.ExtraTime = extra(FirstHalfStoppage)
	case elapsed < FullLength:
		st.Phase = models.PhaseSecondHalf
		st.Minute = HalfLength + 1 + (elapsed - SecondHalfStart)
		st.Second = salise
	case elapsed <= FullLength+SecondHalfStoppage:
		st.Phase = models.PhaseSecondHalf
		st.Minute = FullLength
		st.ExtraTime = extra(elapsed - FullLength)
		st.Second = salise
	default:
		st.Phase = models.PhaseFullTime
		st.Minute = FullLength
		st.ExtraTime = extra(SecondHalfStoppage)
	}

	return st
}

// split floors d to whole minutes (towards negative infinity) and expresses
// the remainder as hundredths of a minute.
func split(d time.Duration) (minutes, salise int) {
	m := d / time.Minute
	rem := d % time.Minute
	if rem < 0 {
		m--
		rem += time.Minute
	}
	return int(m), int(rem * 100 / time.Minute)
}

// extra returns nil for zero stoppage so that minute 45 and 90 render as a
// plain clock until the first added minute starts.
func extra(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
