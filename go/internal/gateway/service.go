package gateway

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/engine"
)

// Service is the match gateway: WebSocket match views, REST state and the
// optional JetStream state publisher
type Service struct {
	engine            *engine.Engine
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	stateHandler      *StateHandler
	publisher         *StatePublisher
}

// Config holds configuration for the gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
	JetStreamConfig  JetStreamConfig
}

// DefaultConfig returns default configuration for the gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		JetStreamConfig:  DefaultJetStreamConfig(),
	}
}

// NewService creates a new gateway service. publisher may be nil when state
// changes are not streamed.
func NewService(config Config, eng *engine.Engine, catalog MatchCatalog, publisher *StatePublisher) *Service {
	connectionManager := NewConnectionManager(config.ConnectionConfig)

	return &Service{
		engine:            eng,
		connectionManager: connectionManager,
		wsHandler:         NewWebSocketHandler(connectionManager, eng, catalog),
		stateHandler:      NewStateHandler(eng, catalog, connectionManager),
		publisher:         publisher,
	}
}

// Start runs the gateway's background work until ctx is cancelled
func (s *Service) Start(ctx context.Context) error {
	log.Info().Bool("publishing", s.publisher != nil).Msg("starting match gateway service")

	if s.publisher != nil {
		go s.publisher.Run(ctx)
	}

	<-ctx.Done()

	log.Info().Msg("match gateway service shutting down")
	return s.Stop()
}

// Stop disconnects every client, which releases their match views, and
// closes the publisher
func (s *Service) Stop() error {
	s.connectionManager.CloseAll()

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close state publisher")
		}
	}

	log.Info().Msg("match gateway service stopped")
	return nil
}

// RegisterRoutes registers the WebSocket and REST routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	s.stateHandler.RegisterStateRoutes(mux)
	log.Info().Msg("match gateway routes registered")
}

// GetStats returns statistics about the gateway service
func (s *Service) GetStats() map[string]interface{} {
	stats := s.connectionManager.GetConnectionStats()
	stats["service"] = "match_gateway"
	stats["open_sessions"] = len(s.engine.Sessions())
	if s.publisher != nil {
		published, dropped := s.publisher.Stats()
		stats["published"] = published
		stats["dropped"] = dropped
	}
	return stats
}
