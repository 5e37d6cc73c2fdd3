package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server        Settings            `hcl:"server,block"`
	Game          GameSettings        `hcl:"game,block"`
	Personalities []PersonalityConfig `hcl:"personality,block"`
}

// Settings contains server-level configuration
type Settings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings controls the sessions the server creates
type GameSettings struct {
	Seats         int    `hcl:"seats,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	Trials        int    `hcl:"trials,optional"`
	Mode          string `hcl:"mode,optional"`
}

// PersonalityConfig overrides or extends the built-in robot catalogue
type PersonalityConfig struct {
	ID             string  `hcl:"id,label"`
	Name           string  `hcl:"name"`
	Tagline        string  `hcl:"tagline,optional"`
	Aggression     float64 `hcl:"aggression"`
	BluffFrequency float64 `hcl:"bluff_frequency,optional"`
	Patience       float64 `hcl:"patience,optional"`
	RiskTolerance  float64 `hcl:"risk_tolerance,optional"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8000,
			LogLevel: "info",
		},
		Game: GameSettings{
			Seats:         4,
			StartingChips: 1000,
			Trials:        1000,
			Mode:          "solo",
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing
// file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Game.Seats == 0 {
		config.Game.Seats = defaults.Game.Seats
	}
	if config.Game.StartingChips == 0 {
		config.Game.StartingChips = defaults.Game.StartingChips
	}
	if config.Game.Trials == 0 {
		config.Game.Trials = defaults.Game.Trials
	}
	if config.Game.Mode == "" {
		config.Game.Mode = defaults.Game.Mode
	}
}

// Validate checks configuration ranges before the server starts
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Game.Seats < 2 || c.Game.Seats > 8 {
		return fmt.Errorf("seats must be between 2 and 8, got %d", c.Game.Seats)
	}
	if c.Game.StartingChips <= 0 {
		return fmt.Errorf("starting_chips must be positive, got %d", c.Game.StartingChips)
	}
	if c.Game.Trials < 0 {
		return fmt.Errorf("trials must not be negative, got %d", c.Game.Trials)
	}
	for _, p := range c.Personalities {
		if p.Aggression < 0 || p.Aggression > 1 {
			return fmt.Errorf("personality %q: aggression must be in [0,1], got %v", p.ID, p.Aggression)
		}
	}
	return nil
}

// Addr returns the listen address in host:port form
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
