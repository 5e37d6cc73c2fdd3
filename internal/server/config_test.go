package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig("/nonexistent/holdem.hcl")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
server {
  address   = "0.0.0.0"
  port      = 3000
  log_level = "debug"
}

game {
  seats          = 6
  starting_chips = 500
  trials         = 2000
  mode           = "solo"
}

personality "grinder" {
  name       = "The Grinder"
  tagline    = "Slow and steady"
  aggression = 0.35
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", config.Server.Address)
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "debug", config.Server.LogLevel)
	assert.Equal(t, 6, config.Game.Seats)
	assert.Equal(t, 500, config.Game.StartingChips)
	assert.Equal(t, 2000, config.Game.Trials)

	require.Len(t, config.Personalities, 1)
	assert.Equal(t, "grinder", config.Personalities[0].ID)
	assert.Equal(t, "The Grinder", config.Personalities[0].Name)
	assert.Equal(t, 0.35, config.Personalities[0].Aggression)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server {
  port = 9001
}

game {
  seats = 3
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Address)
	assert.Equal(t, "info", config.Server.LogLevel)
	assert.Equal(t, 3, config.Game.Seats)
	assert.Equal(t, 1000, config.Game.StartingChips)
	assert.Equal(t, 1000, config.Game.Trials)
	assert.Equal(t, "solo", config.Game.Mode)
}

func TestLoadConfigRejectsInvalidHCL(t *testing.T) {
	path := writeConfigFile(t, `server { port = `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"too few seats", func(c *Config) { c.Game.Seats = 1 }},
		{"too many seats", func(c *Config) { c.Game.Seats = 9 }},
		{"zero chips", func(c *Config) { c.Game.StartingChips = 0 }},
		{"negative trials", func(c *Config) { c.Game.Trials = -1 }},
		{"aggression out of range", func(c *Config) {
			c.Personalities = []PersonalityConfig{{ID: "x", Name: "X", Aggression: 1.5}}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			require.NoError(t, config.Validate())
			tc.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestConfigAddr(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "localhost:8000", config.Addr())
}
