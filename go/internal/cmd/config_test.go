package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/matchday/go/internal/engine"
	"github.com/mcdev12/matchday/go/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultTickInterval, config.Engine.TickInterval)
	assert.Equal(t, "MATCH_STATE", config.NATS.Stream)
	assert.False(t, config.NATS.Enabled)
	assert.NotEmpty(t, config.Demo.Matches)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
engine:
  tick_interval: 500ms
feed:
  poll_interval: 30s
  remember_fetched: true
nats:
  enabled: true
  subject_prefix: app.match
demo:
  matches:
    - id: derby
      home: Reds
      away: Blues
      kickoff_offset: -50m
      goals:
        - {minute: 10, side: home}
        - {minute: 47, side: Away}
`)
	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, config.Engine.TickInterval)
	assert.Equal(t, 30*time.Second, config.Feed.PollInterval)
	assert.True(t, config.Feed.RememberFetched)
	assert.True(t, config.NATS.Enabled)
	assert.Equal(t, "MATCH_STATE", config.NATS.Stream)
	assert.Equal(t, "app.match", config.NATS.SubjectPrefix)
	require.Len(t, config.Demo.Matches, 1)

	matches, err := config.demoMatches()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, -50*time.Minute, matches[0].KickoffOffset)
	assert.Equal(t, []models.MatchEvent{
		{MinuteOffset: 10, Type: models.EventTypeGoal, Side: models.SideHome},
		{MinuteOffset: 47, Type: models.EventTypeGoal, Side: models.SideAway},
	}, matches[0].Events)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("DB_ENABLED", "1")

	config, err := loadConfig(writeConfig(t, "engine: {}\n"))
	require.NoError(t, err)
	assert.True(t, config.NATS.Enabled)
	assert.True(t, config.Database.Enabled)
	assert.Equal(t, engine.DefaultTickInterval, config.Engine.TickInterval)

	config, err = loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.True(t, config.NATS.Enabled)
}

func TestLoadConfig_Malformed(t *testing.T) {
	_, err := loadConfig(writeConfig(t, "engine: [not, a, map"))
	assert.Error(t, err)
}

func TestDemoMatches_Invalid(t *testing.T) {
	config := defaultConfig()
	config.Demo.Matches = []DemoMatchConfig{{ID: "a"}, {ID: "a"}}
	_, err := config.demoMatches()
	assert.ErrorContains(t, err, "duplicate")

	config.Demo.Matches = []DemoMatchConfig{{Home: "x"}}
	_, err = config.demoMatches()
	assert.Error(t, err)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("MATCHDAY_TEST_INT", "42")
	t.Setenv("MATCHDAY_TEST_BAD", "forty")

	assert.Equal(t, 42, getEnvAsInt("MATCHDAY_TEST_INT", 1))
	assert.Equal(t, 1, getEnvAsInt("MATCHDAY_TEST_BAD", 1))
	assert.Equal(t, "fallback", getEnv("MATCHDAY_TEST_UNSET", "fallback"))
	assert.True(t, getEnvAsBool("MATCHDAY_TEST_UNSET", true))
}
