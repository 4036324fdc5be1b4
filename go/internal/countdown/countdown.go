// Package countdown computes the pre-kickoff countdown and its colour tier.
package countdown

import (
	"fmt"
	"time"

	"github.com/mcdev12/matchday/go/internal/models"
)

const (
	secondsPerHour = 3600
	secondsPerDay  = 86400
)

// Calculate returns the countdown to kickoff, or nil once kickoff has been reached.
func Calculate(kickoff, now time.Time) *models.CountdownState {
	if !kickoff.After(now) {
		return nil
	}

	diff := int64(kickoff.Sub(now) / time.Second)
	if diff > secondsPerDay {
		return &models.CountdownState{
			Kind: models.CountdownDays,
			Days: int(diff / secondsPerDay),
		}
	}

	return &models.CountdownState{
		Kind:    models.CountdownClock,
		Hours:   int(diff / secondsPerHour),
		Minutes: int(diff % secondsPerHour / 60),
		Seconds: int(diff % 60),
		Tier:    TierFor(float64(diff) / secondsPerHour),
	}
}

// TierFor grades the hours left before kickoff.
func TierFor(hoursLeft float64) models.ColorTier {
	switch {
	case hoursLeft <= 1:
		return models.TierCritical
	case hoursLeft <= 3:
		return models.TierUrgent
	case hoursLeft <= 6:
		return models.TierWarning
	case hoursLeft <= 12:
		return models.TierNotice
	default:
		return models.TierCalm
	}
}

// Format renders a countdown as "9 days" or "01:30:00".
func Format(cd *models.CountdownState) string {
	if cd == nil {
		return ""
	}
	if cd.Kind == models.CountdownDays {
		if cd.Days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", cd.Days)
	}
	return fmt.Sprintf("%02d:%02d:%02d", cd.Hours, cd.Minutes, cd.Seconds)
}
