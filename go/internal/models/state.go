package models

// Phase is the coarse stage of a match.
type Phase string

const (
	PhaseNotStarted Phase = "NOT_STARTED"
	PhaseFirstHalf  Phase = "FIRST_HALF"
	PhaseHalfTime   Phase = "HALF_TIME"
	PhaseSecondHalf Phase = "SECOND_HALF"
	PhaseFullTime   Phase = "FULL_TIME"
)

// Rank orders phases so that a match never moves backwards.
func (p Phase) Rank() int {
	switch p {
	case PhaseNotStarted:
		return 0
	case PhaseFirstHalf:
		return 1
	case PhaseHalfTime:
		return 2
	case PhaseSecondHalf:
		return 3
	case PhaseFullTime:
		return 4
	default:
		return -1
	}
}

// TemporalState is what the match clock shows at a given instant.
type TemporalState struct {
	Phase     Phase `json:"phase"`
	Elapsed   int   `json:"elapsed"`
	Minute    int   `json:"minute"`
	ExtraTime *int  `json:"extra_time,omitempty"`
	Second    int   `json:"second"`
}

// HalfTimeScore is the score at the end of the first half.
type HalfTimeScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// ScoreState is the running score of a match.
type ScoreState struct {
	Home     int            `json:"home"`
	Away     int            `json:"away"`
	HalfTime *HalfTimeScore `json:"half_time,omitempty"`
}

// CountdownKind selects which fields of a CountdownState are meaningful.
type CountdownKind string

const (
	CountdownDays  CountdownKind = "days"
	CountdownClock CountdownKind = "countdown"
)

// ColorTier grades how close kickoff is.
type ColorTier string

const (
	TierCritical ColorTier = "critical"
	TierUrgent   ColorTier = "urgent"
	TierWarning  ColorTier = "warning"
	TierNotice   ColorTier = "notice"
	TierCalm     ColorTier = "calm"
)

// CountdownState is the pre-kickoff countdown.
type CountdownState struct {
	Kind    CountdownKind `json:"kind"`
	Days    int           `json:"days,omitempty"`
	Hours   int           `json:"hours"`
	Minutes int           `json:"minutes"`
	Seconds int           `json:"seconds"`
	Tier    ColorTier     `json:"color_tier,omitempty"`
}
