package phase

import (
	"fmt"

	"github.com/mcdev12/matchday/go/internal/models"
)

const (
	LabelFirstHalf  = "First Half"
	LabelSecondHalf = "Second Half"
)

// Display renders the clock as "45+2" during stoppage time and "12:07" otherwise.
func Display(st models.TemporalState) string {
	if st.ExtraTime != nil {
		return fmt.Sprintf("%d+%d", st.Minute, *st.ExtraTime)
	}
	return fmt.Sprintf("%d:%02d", st.Minute, st.Second)
}

// HalfLabel names the half the displayed minute belongs to.
func HalfLabel(st models.TemporalState) string {
	if st.Minute < HalfLength+1 || (st.Minute == HalfLength && st.ExtraTime != nil) {
		return LabelFirstHalf
	}
	return LabelSecondHalf
}
