package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lrc.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_Full(t *testing.T) {
	path := writeConfig(t, `
log {
  level = "debug"
  file  = "/tmp/lrc-debug.log"
}

game {
  players = 4
  names   = ["Alice", "Bob", "Charlie", "Dana"]
  seed    = 42
}

simulate {
  games   = 500
  players = 6
  workers = 2
  timeout = "250ms"
}
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "/tmp/lrc-debug.log", cfg.Log.File)

	assert.Equal(t, 4, cfg.Game.Players)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie", "Dana"}, cfg.Game.Names)
	require.NotNil(t, cfg.Game.Seed)
	assert.Equal(t, int64(42), *cfg.Game.Seed)

	assert.Equal(t, 500, cfg.Simulate.Games)
	assert.Equal(t, 6, cfg.Simulate.Players)
	assert.Equal(t, 2, cfg.Simulate.Workers)
	timeout, err := cfg.Simulate.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, timeout)
}

func TestLoadFile_PartialFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
game {
  names = ["Ann", "Ben", "Cat", "Dee", "Eve"]
}
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.Game.Players, "players follows the name count")
	assert.Nil(t, cfg.Game.Seed)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "lrc.log", cfg.Log.File)
	assert.Equal(t, 10000, cfg.Simulate.Games)
	assert.Equal(t, "5s", cfg.Simulate.Timeout)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfig(t, `game { players = `)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse HCL")

	path = writeConfig(t, `game { players = "many" }`)
	_, err = LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode HCL")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LRC_LOG_LEVEL", "warn")
	t.Setenv("LRC_LOG_FILE", "env.log")
	t.Setenv("LRC_PLAYERS", "7")
	t.Setenv("LRC_NAMES", "Ann,Ben,Cat")
	t.Setenv("LRC_SEED", "99")
	t.Setenv("LRC_GAMES", "25")
	t.Setenv("LRC_WORKERS", "3")
	t.Setenv("LRC_GAME_TIMEOUT", "1s")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	require.NoError(t, cfg.Validate())

	assert.Equal(t, log.WarnLevel, cfg.LogLevel())
	assert.Equal(t, "env.log", cfg.Log.File)
	assert.Equal(t, 7, cfg.Game.Players)
	assert.Equal(t, 7, cfg.Simulate.Players)
	assert.Equal(t, []string{"Ann", "Ben", "Cat"}, cfg.Game.Names)
	require.NotNil(t, cfg.Game.Seed)
	assert.Equal(t, int64(99), *cfg.Game.Seed)
	assert.Equal(t, 25, cfg.Simulate.Games)
	assert.Equal(t, 3, cfg.Simulate.Workers)
	assert.Equal(t, "1s", cfg.Simulate.Timeout)
}

func TestApplyEnv_Unset(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv_BadValue(t *testing.T) {
	t.Setenv("LRC_PLAYERS", "lots")
	err := Default().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
game {
  players = 4
}
`)
	t.Setenv("LRC_PLAYERS", "6")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Game.Players)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"too few players", func(c *Config) { c.Game.Players = 2 }, "players must be between"},
		{"too many players", func(c *Config) { c.Game.Players = MaxPlayers + 1 }, "players must be between"},
		{"too many names", func(c *Config) { c.Game.Names = []string{"a", "b", "c", "d"} }, "4 names for 3 players"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"no games", func(c *Config) { c.Simulate.Games = 0 }, "games must be positive"},
		{"small sim table", func(c *Config) { c.Simulate.Players = 2 }, "at least 3"},
		{"negative workers", func(c *Config) { c.Simulate.Workers = -1 }, "workers"},
		{"bad timeout", func(c *Config) { c.Simulate.Timeout = "soon" }, "invalid timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPlayerNames(t *testing.T) {
	g := &GameSettings{Players: 4, Names: []string{"Ann", "", "Cat"}}
	assert.Equal(t, []string{"Ann", "Player 2", "Cat", "Player 4"}, g.PlayerNames())
}
