// Package config loads lrc settings from an HCL file and LRC_* environment
// variables. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// MaxPlayers caps the table size offered by the interactive setup.
const MaxPlayers = 50

// Config is the complete lrc configuration
type Config struct {
	Log      *LogSettings      `hcl:"log,block"`
	Game     *GameSettings     `hcl:"game,block"`
	Simulate *SimulateSettings `hcl:"simulate,block"`
}

// LogSettings controls the debug log
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// GameSettings seeds the interactive game
type GameSettings struct {
	Players int      `hcl:"players,optional"`
	Names   []string `hcl:"names,optional"`
	Seed    *int64   `hcl:"seed,optional"`
}

// SimulateSettings controls batch simulation
type SimulateSettings struct {
	Games   int    `hcl:"games,optional"`
	Players int    `hcl:"players,optional"`
	Workers int    `hcl:"workers,optional"`
	Timeout string `hcl:"timeout,optional"`
}

// envOverrides maps LRC_* variables onto Config
type envOverrides struct {
	LogLevel    string   `env:"LRC_LOG_LEVEL"`
	LogFile     string   `env:"LRC_LOG_FILE"`
	Players     *int     `env:"LRC_PLAYERS"`
	Names       []string `env:"LRC_NAMES" envSeparator:","`
	Seed        *int64   `env:"LRC_SEED"`
	Games       *int     `env:"LRC_GAMES"`
	Workers     *int     `env:"LRC_WORKERS"`
	GameTimeout string   `env:"LRC_GAME_TIMEOUT"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log:      defaultLog(),
		Game:     defaultGame(),
		Simulate: defaultSimulate(),
	}
}

func defaultLog() *LogSettings {
	return &LogSettings{Level: "info", File: "lrc.log"}
}

func defaultGame() *GameSettings {
	return &GameSettings{Players: 3}
}

func defaultSimulate() *SimulateSettings {
	return &SimulateSettings{Games: 10000, Players: 4, Timeout: "5s"}
}

// LoadFile reads an HCL configuration file. A missing file yields the
// defaults; missing blocks and attributes are filled from the defaults.
func LoadFile(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Load reads filename, then applies environment overrides
func Load(filename string) (*Config, error) {
	cfg, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log == nil {
		c.Log = defaultLog()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "lrc.log"
	}

	if c.Game == nil {
		c.Game = defaultGame()
	}
	if c.Game.Players == 0 {
		c.Game.Players = max(len(c.Game.Names), 3)
	}

	if c.Simulate == nil {
		c.Simulate = defaultSimulate()
	}
	if c.Simulate.Games == 0 {
		c.Simulate.Games = 10000
	}
	if c.Simulate.Players == 0 {
		c.Simulate.Players = 4
	}
	if c.Simulate.Timeout == "" {
		c.Simulate.Timeout = "5s"
	}
}

// ApplyEnv overrides settings from LRC_* environment variables
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Log.File = o.LogFile
	}
	if o.Players != nil {
		c.Game.Players = *o.Players
		c.Simulate.Players = *o.Players
	}
	if len(o.Names) > 0 {
		c.Game.Names = o.Names
	}
	if o.Seed != nil {
		c.Game.Seed = o.Seed
	}
	if o.Games != nil {
		c.Simulate.Games = *o.Games
	}
	if o.Workers != nil {
		c.Simulate.Workers = *o.Workers
	}
	if o.GameTimeout != "" {
		c.Simulate.Timeout = o.GameTimeout
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}

	if c.Game.Players < 3 || c.Game.Players > MaxPlayers {
		return fmt.Errorf("game: players must be between 3 and %d, got %d", MaxPlayers, c.Game.Players)
	}
	if len(c.Game.Names) > c.Game.Players {
		return fmt.Errorf("game: %d names for %d players", len(c.Game.Names), c.Game.Players)
	}

	if c.Simulate.Games <= 0 {
		return fmt.Errorf("simulate: games must be positive, got %d", c.Simulate.Games)
	}
	if c.Simulate.Players < 3 {
		return fmt.Errorf("simulate: players must be at least 3, got %d", c.Simulate.Players)
	}
	if c.Simulate.Workers < 0 {
		return fmt.Errorf("simulate: workers must not be negative, got %d", c.Simulate.Workers)
	}
	if _, err := c.Simulate.TimeoutDuration(); err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// PlayerNames returns one name per player, filling gaps with "Player N"
func (g *GameSettings) PlayerNames() []string {
	names := make([]string, g.Players)
	for i := range names {
		if i < len(g.Names) && g.Names[i] != "" {
			names[i] = g.Names[i]
		} else {
			names[i] = fmt.Sprintf("Player %d", i+1)
		}
	}
	return names
}

// TimeoutDuration parses the per-game timeout
func (s *SimulateSettings) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
	}
	return d, nil
}
