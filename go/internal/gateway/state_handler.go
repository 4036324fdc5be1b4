package gateway

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/countdown"
	"github.com/mcdev12/matchday/go/internal/engine"
	"github.com/mcdev12/matchday/go/internal/models"
)

// MatchSummary is one open match view
type MatchSummary struct {
	MatchID     string             `json:"match_id"`
	Mode        string             `json:"mode"`
	Resolved    bool               `json:"resolved"`
	Phase       models.Phase       `json:"phase,omitempty"`
	Display     string             `json:"display,omitempty"`
	Score       *models.ScoreState `json:"score,omitempty"`
	Connections int                `json:"connections"`
}

// CountdownResponse is a one-shot countdown for a match
type CountdownResponse struct {
	MatchID   string                 `json:"match_id"`
	Resolved  bool                   `json:"resolved"`
	Kickoff   *time.Time             `json:"kickoff,omitempty"`
	Source    string                 `json:"source,omitempty"`
	Now       time.Time              `json:"now"`
	Started   bool                   `json:"started"`
	Countdown *models.CountdownState `json:"countdown,omitempty"`
	Text      string                 `json:"text,omitempty"`
	Colors    *countdown.ColorPair   `json:"colors,omitempty"`
}

// StateHandler handles HTTP requests for match state
type StateHandler struct {
	engine            *engine.Engine
	catalog           MatchCatalog
	connectionManager *ConnectionManager
}

// NewStateHandler creates a new state handler
func NewStateHandler(eng *engine.Engine, catalog MatchCatalog, cm *ConnectionManager) *StateHandler {
	return &StateHandler{
		engine:            eng,
		catalog:           catalog,
		connectionManager: cm,
	}
}

// HandleListMatches handles GET /api/matches
func (h *StateHandler) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	ids := h.engine.Sessions()
	out := make([]MatchSummary, 0, len(ids))
	for _, id := range ids {
		session, ok := h.engine.Get(id)
		if !ok {
			continue
		}
		summary := MatchSummary{
			MatchID:     id,
			Mode:        session.Mode(),
			Connections: h.connectionManager.ConnectionCount(id),
		}
		if snap := session.Snapshot(); snap != nil {
			summary.Resolved = snap.Resolved
			summary.Display = snap.Display
			summary.Score = snap.Score
			if snap.Temporal != nil {
				summary.Phase = snap.Temporal.Phase
			}
		}
		out = append(out, summary)
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetMatchState handles GET /api/matches/{id}/state
func (h *StateHandler) HandleGetMatchState(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")

	session, ok := h.engine.Get(matchID)
	if !ok {
		writeError(w, http.StatusNotFound, "match is not open")
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleGetCountdown handles GET /api/matches/{id}/countdown
func (h *StateHandler) HandleGetCountdown(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")

	spec, err := h.catalog.Spec(r.Context(), matchID)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("match_id", matchID).Msg("failed to describe match")
		}
		writeError(w, status, err.Error())
		return
	}

	now := h.engine.Now()
	res := h.engine.Peek(r.Context(), spec)
	resp := CountdownResponse{MatchID: matchID, Resolved: res.Resolved, Now: now}
	if res.Resolved {
		kickoff := res.Kickoff
		resp.Kickoff = &kickoff
		resp.Source = res.Source.String()
		resp.Countdown = countdown.Calculate(kickoff, now)
		resp.Started = resp.Countdown == nil
		resp.Text = countdown.Format(resp.Countdown)
		if resp.Countdown != nil && resp.Countdown.Kind == models.CountdownClock {
			colors := countdown.Palette(resp.Countdown.Tier)
			resp.Colors = &colors
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleListFixtures handles GET /api/fixtures
func (h *StateHandler) HandleListFixtures(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.Catalog(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list fixtures")
		writeError(w, http.StatusInternalServerError, "failed to list fixtures")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// RegisterStateRoutes registers state-related HTTP routes
func (h *StateHandler) RegisterStateRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/matches", h.HandleListMatches)
	mux.HandleFunc("GET /api/matches/{id}/state", h.HandleGetMatchState)
	mux.HandleFunc("GET /api/matches/{id}/countdown", h.HandleGetCountdown)
	mux.HandleFunc("GET /api/fixtures", h.HandleListFixtures)
}
