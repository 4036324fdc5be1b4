package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/engine"
	"github.com/mcdev12/matchday/go/internal/fixtures"
	"github.com/mcdev12/matchday/go/internal/models"
)

// MatchCatalog knows how to describe any match that can be watched
type MatchCatalog interface {
	Spec(ctx context.Context, matchID string) (engine.MatchSpec, error)
	Catalog(ctx context.Context) ([]models.Fixture, error)
}

// WebSocketHandler handles WebSocket upgrade requests for match views
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	engine            *engine.Engine
	catalog           MatchCatalog
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cm *ConnectionManager, eng *engine.Engine, catalog MatchCatalog) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		engine:            eng,
		catalog:           catalog,
	}
}

// HandleMatchConnection opens the match view and streams it to the client.
// The view is released when the client disconnects.
func (h *WebSocketHandler) HandleMatchConnection(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("match_id")
	if matchID == "" {
		http.Error(w, "match_id is required", http.StatusBadRequest)
		return
	}

	spec, err := h.catalog.Spec(r.Context(), matchID)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("match_id", matchID).Msg("failed to describe match")
		}
		http.Error(w, err.Error(), status)
		return
	}

	session, err := h.engine.Open(r.Context(), spec)
	if err != nil {
		log.Error().Err(err).Str("match_id", matchID).Msg("failed to open match view")
		http.Error(w, "failed to open match", statusForError(err))
		return
	}

	release := func() { h.engine.Release(matchID) }
	if _, err := h.connectionManager.UpgradeConnection(w, r, session, release); err != nil {
		// The upgrader has already written the HTTP error.
		log.Error().Err(err).Str("match_id", matchID).Msg("failed to upgrade WebSocket connection")
		release()
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	stats := h.connectionManager.GetConnectionStats()
	stats["open_sessions"] = len(h.engine.Sessions())
	writeJSON(w, http.StatusOK, stats)
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/match", h.HandleMatchConnection)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, fixtures.ErrFixtureNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrEmptyMatchID):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrEngineClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorPayload{Error: msg})
}
