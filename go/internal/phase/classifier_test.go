package phase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/matchday/go/internal/models"
)

var kickoff = time.Date(2026, 5, 30, 19, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return kickoff.Add(time.Duration(minutes) * time.Minute)
}

func TestClassify_BoundaryTable(t *testing.T) {
	tests := []struct {
		name    string
		elapsed int
		phase   models.Phase
		minute  int
		extra   int // 0 means nil
		display string
	}{
		{"before kickoff", -10, models.PhaseNotStarted, 0, 0, "0:00"},
		{"one minute before", -1, models.PhaseNotStarted, 0, 0, "0:00"},
		{"kickoff", 0, models.PhaseFirstHalf, 0, 0, "0:00"},
		{"first half", 30, models.PhaseFirstHalf, 30, 0, "30:00"},
		{"last regular minute", 44, models.PhaseFirstHalf, 44, 0, "44:00"},
		{"minute 45", 45, models.PhaseFirstHalf, 45, 0, "45:00"},
		{"first stoppage minute", 46, models.PhaseFirstHalf, 45, 1, "45+1"},
		{"end of first stoppage", 48, models.PhaseFirstHalf, 45, 3, "45+3"},
		{"interval start", 49, models.PhaseHalfTime, 45, 3, "45+3"},
		{"interval end", 59, models.PhaseHalfTime, 45, 3, "45+3"},
		{"second half kickoff", 60, models.PhaseSecondHalf, 46, 0, "46:00"},
		{"mid second half", 70, models.PhaseSecondHalf, 56, 0, "56:00"},
		{"last regular minute", 89, models.PhaseSecondHalf, 75, 0, "75:00"},
		{"minute 90", 90, models.PhaseSecondHalf, 90, 0, "90:00"},
		{"second stoppage", 92, models.PhaseSecondHalf, 90, 2, "90+2"},
		{"end of second stoppage", 94, models.PhaseSecondHalf, 90, 4, "90+4"},
		{"full time", 95, models.PhaseFullTime, 90, 4, "90+4"},
		{"hard full time", 112, models.PhaseFullTime, 90, 4, "90+4"},
		{"long after", 1000, models.PhaseFullTime, 90, 4, "90+4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Classify(kickoff, at(tt.elapsed))

			assert.Equal(t, tt.phase, st.Phase)
			assert.Equal(t, tt.minute, st.Minute)
			assert.Equal(t, tt.elapsed, st.Elapsed)
			if tt.extra == 0 {
				assert.Nil(t, st.ExtraTime)
			} else {
				require.NotNil(t, st.ExtraTime)
				assert.Equal(t, tt.extra, *st.ExtraTime)
			}
			assert.Equal(t, tt.display, Display(st))
		})
	}
}

func TestClassify_FloorsNegativeElapsed(t *testing.T) {
	st := Classify(kickoff, kickoff.Add(-30*time.Second))

	assert.Equal(t, models.PhaseNotStarted, st.Phase)
	assert.Equal(t, -1, st.Elapsed)
}

func TestClassify_Salise(t *testing.T) {
	tests := []struct {
		offset time.Duration
		want   int
	}{
		{12*time.Minute + 0*time.Second, 0},
		{12*time.Minute + 30*time.Second, 50},
		{12*time.Minute + 45*time.Second, 75},
		{12*time.Minute + 59*time.Second + 999*time.Millisecond, 99},
	}

	for _, tt := range tests {
		st := Classify(kickoff, kickoff.Add(tt.offset))
		assert.Equal(t, tt.want, st.Second, "offset %s", tt.offset)
		assert.Equal(t, 12, st.Minute)
	}
}

func TestClassify_HalfTimeForcesSecondToZero(t *testing.T) {
	st := Classify(kickoff, kickoff.Add(52*time.Minute+40*time.Second))

	assert.Equal(t, models.PhaseHalfTime, st.Phase)
	assert.Zero(t, st.Second)
}

func TestClassify_PhasesNeverRegress(t *testing.T) {
	prev := -1
	for m := -120; m <= 240; m++ {
		rank := Classify(kickoff, at(m)).Phase.Rank()
		require.GreaterOrEqual(t, rank, prev, "elapsed %d", m)
		prev = rank
	}
}

func TestClassify_ExtraTimeOnlyAtStoppageMinutes(t *testing.T) {
	for m := -5; m <= 130; m++ {
		st := Classify(kickoff, at(m))
		if st.ExtraTime == nil {
			continue
		}
		assert.Contains(t, []int{45, 90}, st.Minute, "elapsed %d", m)
		assert.GreaterOrEqual(t, *st.ExtraTime, 1)
		assert.LessOrEqual(t, *st.ExtraTime, 4)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	now := kickoff.Add(67*time.Minute + 13*time.Second)
	assert.Equal(t, Classify(kickoff, now), Classify(kickoff, now))
}

func TestHalfLabel(t *testing.T) {
	assert.Equal(t, LabelFirstHalf, HalfLabel(Classify(kickoff, at(20))))
	assert.Equal(t, LabelFirstHalf, HalfLabel(Classify(kickoff, at(47))))
	assert.Equal(t, LabelFirstHalf, HalfLabel(Classify(kickoff, at(55))))
	assert.Equal(t, LabelSecondHalf, HalfLabel(Classify(kickoff, at(60))))
	assert.Equal(t, LabelSecondHalf, HalfLabel(Classify(kickoff, at(93))))
}
