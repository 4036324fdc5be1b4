package models

import "sort"

// TeamSide identifies which team an event belongs to.
type TeamSide string

const (
	SideHome TeamSide = "home"
	SideAway TeamSide = "away"
)

// Valid reports whether the side is one of the known sides.
func (s TeamSide) Valid() bool {
	return s == SideHome || s == SideAway
}

// EventType defines the type of a match event.
type EventType string

const (
	EventTypeGoal  EventType = "Goal"
	EventTypeCard  EventType = "Card"
	EventTypeSubst EventType = "Subst"
)

// MatchEvent is a single timestamped entry of a match timeline.
// MinuteOffset is whole minutes after kickoff.
type MatchEvent struct {
	MinuteOffset int       `json:"minute" yaml:"minute"`
	Type         EventType `json:"type" yaml:"type"`
	Side         TeamSide  `json:"side" yaml:"side"`
}

// IsGoal reports whether the event counts towards the score.
func (e MatchEvent) IsGoal() bool {
	return e.Type == EventTypeGoal
}

// Ledger is the ordered, read-only event timeline of a match.
type Ledger struct {
	events []MatchEvent
}

// NewLedger builds a ledger sorted by minute offset. Events with a negative
// offset or an unknown side are dropped.
func NewLedger(events []MatchEvent) Ledger {
	kept := make([]MatchEvent, 0, len(events))
	for _, e := range events {
		if e.MinuteOffset < 0 || !e.Side.Valid() {
			continue
		}
		if e.Type == "" {
			e.Type = EventTypeGoal
		}
		kept = append(kept, e)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].MinuteOffset < kept[j].MinuteOffset
	})
	return Ledger{events: kept}
}

// Events returns a copy of the ledger's events.
func (l Ledger) Events() []MatchEvent {
	out := make([]MatchEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of events in the ledger.
func (l Ledger) Len() int {
	return len(l.events)
}

// Each calls fn for every event in minute order until fn returns false.
func (l Ledger) Each(fn func(MatchEvent) bool) {
	for _, e := range l.events {
		if !fn(e) {
			return
		}
	}
}

// MatchStatus is the canonical status vocabulary reported by the fixtures feed.
type MatchStatus string

const (
	StatusUnknown          MatchStatus = ""
	StatusNotStarted       MatchStatus = "not-started"
	StatusFirstHalf        MatchStatus = "first-half"
	StatusHalfTime         MatchStatus = "half-time"
	StatusSecondHalf       MatchStatus = "second-half"
	StatusExtraTime        MatchStatus = "extra-time"
	StatusBreakTime        MatchStatus = "break-time"
	StatusPenalties        MatchStatus = "penalties"
	StatusFullTime         MatchStatus = "full-time"
	StatusAfterExtraTime   MatchStatus = "after-extra-time"
	StatusPenaltiesDecided MatchStatus = "penalties-decided"
	StatusWalkover         MatchStatus = "walkover"
)

// Fixture is a scheduled match as stored locally or returned by the fixtures feed.
type Fixture struct {
	ID        string       `json:"id"`
	HomeTeam  string       `json:"home_team"`
	AwayTeam  string       `json:"away_team"`
	Venue     string       `json:"venue,omitempty"`
	League    string       `json:"league,omitempty"`
	Timestamp int64        `json:"timestamp,omitempty"` // unix seconds, 0 when absent
	Date      string       `json:"date,omitempty"`      // ISO-8601, empty when absent
	Mock      bool         `json:"mock"`
	Status    MatchStatus  `json:"status,omitempty"`
	Elapsed   *int         `json:"elapsed,omitempty"`
	HomeGoals *int         `json:"home_goals,omitempty"`
	AwayGoals *int         `json:"away_goals,omitempty"`
	Events    []MatchEvent `json:"events,omitempty"`
}
