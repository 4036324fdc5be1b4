package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/matchday/go/internal/models"
)

var kickoff = time.Date(2026, 6, 11, 20, 0, 0, 0, time.UTC)

func TestCalculate_NilOnceStarted(t *testing.T) {
	for _, d := range []time.Duration{0, time.Nanosecond, time.Second, time.Hour, 400 * time.Hour} {
		assert.Nil(t, Calculate(kickoff, kickoff.Add(d)), "now = kickoff+%s", d)
	}
}

func TestCalculate_NinetyMinutesIsUrgent(t *testing.T) {
	cd := Calculate(kickoff, kickoff.Add(-5400*time.Second))

	require.NotNil(t, cd)
	assert.Equal(t, models.CountdownClock, cd.Kind)
	assert.Equal(t, 1, cd.Hours)
	assert.Equal(t, 30, cd.Minutes)
	assert.Equal(t, 0, cd.Seconds)
	assert.Equal(t, models.TierUrgent, cd.Tier)
	assert.Equal(t, "01:30:00", Format(cd))
}

func TestCalculate_NineDaysOut(t *testing.T) {
	cd := Calculate(kickoff, kickoff.Add(-9*24*time.Hour))

	require.NotNil(t, cd)
	assert.Equal(t, models.CountdownDays, cd.Kind)
	assert.Equal(t, 9, cd.Days)
	assert.Equal(t, "9 days", Format(cd))
}

func TestCalculate_DaysBranch(t *testing.T) {
	tests := []struct {
		before time.Duration
		days   int
	}{
		{24*time.Hour + time.Second, 1},
		{47 * time.Hour, 1},
		{48 * time.Hour, 2},
		{8 * 24 * time.Hour, 8},
	}

	for _, tt := range tests {
		cd := Calculate(kickoff, kickoff.Add(-tt.before))
		require.NotNil(t, cd)
		assert.Equal(t, models.CountdownDays, cd.Kind, "before %s", tt.before)
		assert.Equal(t, tt.days, cd.Days, "before %s", tt.before)
	}
}

func TestCalculate_ClockWithinADay(t *testing.T) {
	for s := 1; s <= 24*3600; s += 1799 {
		cd := Calculate(kickoff, kickoff.Add(-time.Duration(s)*time.Second))
		require.NotNil(t, cd)
		assert.Equal(t, models.CountdownClock, cd.Kind, "%ds before", s)
	}

	cd := Calculate(kickoff, kickoff.Add(-24*time.Hour))
	require.NotNil(t, cd)
	assert.Equal(t, models.CountdownClock, cd.Kind)
	assert.Equal(t, 24, cd.Hours)
}

func TestCalculate_FloorsSubSecond(t *testing.T) {
	cd := Calculate(kickoff, kickoff.Add(-61*time.Second-900*time.Millisecond))

	require.NotNil(t, cd)
	assert.Equal(t, 0, cd.Hours)
	assert.Equal(t, 1, cd.Minutes)
	assert.Equal(t, 1, cd.Seconds)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		hours float64
		want  models.ColorTier
	}{
		{0.1, models.TierCritical},
		{1, models.TierCritical},
		{1.01, models.TierUrgent},
		{3, models.TierUrgent},
		{5.5, models.TierWarning},
		{6, models.TierWarning},
		{11, models.TierNotice},
		{12, models.TierNotice},
		{12.5, models.TierCalm},
		{24, models.TierCalm},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.hours), "hours %v", tt.hours)
	}
}

func TestPalette(t *testing.T) {
	assert.Equal(t, ColorPair{Base: "#EF4444", Shade: "#B91C1C"}, Palette(models.TierCritical))
	assert.Equal(t, Palette(models.TierCalm), Palette("unknown"))
	for _, tier := range []models.ColorTier{models.TierCritical, models.TierUrgent, models.TierWarning, models.TierNotice, models.TierCalm} {
		assert.NotEmpty(t, Palette(tier).Shade)
	}
}
