package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/clients/football_api_client"
	"github.com/mcdev12/matchday/go/internal/engine"
	"github.com/mcdev12/matchday/go/internal/fixtures"
	fixturesdb "github.com/mcdev12/matchday/go/internal/fixtures/db"
	"github.com/mcdev12/matchday/go/internal/gateway"
	"github.com/mcdev12/matchday/go/internal/livefeed"
	"github.com/mcdev12/matchday/go/internal/schedule"
)

type Services struct {
	DB        *sql.DB
	Engine    *engine.Engine
	Fixtures  *fixtures.App
	Gateway   *gateway.Service
	Publisher *gateway.StatePublisher
}

func setupServices(ctx context.Context, config *Config) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Engine → Gateway
	clock := clockwork.NewRealClock()
	services := &Services{}

	var repo fixtures.FixturesRepository
	if config.Database.Enabled {
		database, err := setupDatabase(ctx)
		if err != nil {
			return nil, err
		}
		services.DB = database
		repo = fixtures.NewRepository(fixturesdb.New(database))
	}

	var feed livefeed.FixtureFetcher
	if apiKey := getEnv("FOOTBALL_API_KEY", ""); apiKey != "" {
		client := football_api_client.NewFootballApiClientWithURL(
			getEnv("FOOTBALL_API_URL", football_api_client.BaseURL), apiKey)
		feed = client
	} else {
		log.Warn().Msg("FOOTBALL_API_KEY not set, live matches are disabled")
	}

	demoMatches, err := config.demoMatches()
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("invalid demo catalogue: %w", err)
	}
	demo := schedule.NewDemoKickoffs(clock.Now())
	services.Fixtures = fixtures.NewApp(repo, feed, clock, demo, demoMatches, fixtures.Config{
		PollInterval:    config.Feed.PollInterval,
		RememberFetched: config.Feed.RememberFetched,
	})

	gatewayConfig := gateway.DefaultConfig()
	gatewayConfig.JetStreamConfig.URL = getEnv("NATS_URL", gatewayConfig.JetStreamConfig.URL)
	gatewayConfig.JetStreamConfig.StreamName = config.NATS.Stream
	gatewayConfig.JetStreamConfig.SubjectPrefix = config.NATS.SubjectPrefix

	engineConfig := engine.Config{TickInterval: config.Engine.TickInterval}
	if config.NATS.Enabled {
		publisher, err := gateway.NewStatePublisher(gatewayConfig.JetStreamConfig)
		if err != nil {
			services.Close()
			return nil, fmt.Errorf("failed to create state publisher: %w", err)
		}
		services.Publisher = publisher
		engineConfig.Observer = publisher
	}

	services.Engine = engine.NewEngine(clock, schedule.NewResolver(), engineConfig)
	services.Gateway = gateway.NewService(gatewayConfig, services.Engine, services.Fixtures, services.Publisher)

	log.Info().
		Bool("database", services.DB != nil).
		Bool("live_feed", feed != nil).
		Bool("nats", services.Publisher != nil).
		Int("demo_matches", len(demoMatches)).
		Dur("tick_interval", engineConfig.TickInterval).
		Msg("services ready")
	return services, nil
}

// Close releases everything setupServices acquired. Gateway.Stop must have
// run first so that client views are released before the engine closes.
func (s *Services) Close() {
	if s.Engine != nil {
		s.Engine.Close()
	}
	if s.Publisher != nil {
		s.Publisher.Close()
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}
}
