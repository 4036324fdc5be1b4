package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/matchday/go/internal/engine"
	"github.com/mcdev12/matchday/go/internal/fixtures"
	"github.com/mcdev12/matchday/go/internal/livefeed"
	"github.com/mcdev12/matchday/go/internal/models"
)

type Config struct {
	Engine struct {
		TickInterval time.Duration `yaml:"tick_interval"`
	} `yaml:"engine"`

	Feed struct {
		PollInterval    time.Duration `yaml:"poll_interval"`
		RememberFetched bool          `yaml:"remember_fetched"`
	} `yaml:"feed"`

	Database struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"database"`

	NATS struct {
		Enabled       bool   `yaml:"enabled"`
		Stream        string `yaml:"stream"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"nats"`

	Demo struct {
		Matches []DemoMatchConfig `yaml:"matches"`
	} `yaml:"demo"`
}

type DemoMatchConfig struct {
	ID            string        `yaml:"id"`
	Home          string        `yaml:"home"`
	Away          string        `yaml:"away"`
	KickoffOffset time.Duration `yaml:"kickoff_offset"`
	Goals         []GoalConfig  `yaml:"goals"`
}

type GoalConfig struct {
	Minute int    `yaml:"minute"`
	Side   string `yaml:"side"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func defaultConfig() *Config {
	var config Config
	config.Engine.TickInterval = engine.DefaultTickInterval
	config.Feed.PollInterval = livefeed.DefaultPollInterval
	config.NATS.Stream = "MATCH_STATE"
	config.NATS.SubjectPrefix = "match.state"
	config.Demo.Matches = []DemoMatchConfig{
		{ID: "demo-live", Home: "Harbour City", Away: "Northgate", KickoffOffset: -30 * time.Minute,
			Goals: []GoalConfig{{Minute: 12, Side: "home"}, {Minute: 27, Side: "away"}, {Minute: 58, Side: "home"}}},
		{ID: "demo-soon", Home: "Redbridge", Away: "Lowmoor", KickoffOffset: 45 * time.Minute},
		{ID: "demo-tomorrow", Home: "Westvale", Away: "Eastport", KickoffOffset: 30 * time.Hour},
	}
	return &config
}

// loadConfig reads the YAML config at path. A missing file yields the
// defaults; a malformed one is an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if config.Engine.TickInterval <= 0 {
		config.Engine.TickInterval = engine.DefaultTickInterval
	}
	if config.Feed.PollInterval <= 0 {
		config.Feed.PollInterval = livefeed.DefaultPollInterval
	}
	if config.NATS.Stream == "" {
		config.NATS.Stream = "MATCH_STATE"
	}
	if config.NATS.SubjectPrefix == "" {
		config.NATS.SubjectPrefix = "match.state"
	}
	config.NATS.Enabled = getEnvAsBool("NATS_ENABLED", config.NATS.Enabled)
	config.Database.Enabled = getEnvAsBool("DB_ENABLED", config.Database.Enabled)

	return config, nil
}

// demoMatches converts the configured catalogue. Duplicate ids are an error;
// goals with an unknown side are kept and later dropped by the ledger.
func (c *Config) demoMatches() ([]fixtures.DemoMatch, error) {
	seen := make(map[string]bool, len(c.Demo.Matches))
	out := make([]fixtures.DemoMatch, 0, len(c.Demo.Matches))
	for _, m := range c.Demo.Matches {
		if m.ID == "" {
			return nil, errors.New("demo match without id")
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate demo match %q", m.ID)
		}
		seen[m.ID] = true

		events := make([]models.MatchEvent, 0, len(m.Goals))
		for _, g := range m.Goals {
			events = append(events, models.MatchEvent{
				MinuteOffset: g.Minute,
				Type:         models.EventTypeGoal,
				Side:         models.TeamSide(strings.ToLower(g.Side)),
			})
		}
		out = append(out, fixtures.DemoMatch{
			ID:            m.ID,
			HomeTeam:      m.Home,
			AwayTeam:      m.Away,
			KickoffOffset: m.KickoffOffset,
			Events:        events,
		})
	}
	return out, nil
}
