package simulator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/leftrightcenter/internal/game"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNew(t *testing.T) {
	sim := New(Config{Games: 100, Players: 4, Seed: 12345, Logger: quietLogger()})
	require.NotNil(t, sim)

	assert.Equal(t, 100, sim.config.Games)
	assert.Equal(t, 4, sim.config.Players)
	assert.Equal(t, int64(12345), sim.config.Seed)
	assert.Positive(t, sim.config.Workers)
	assert.LessOrEqual(t, sim.config.Workers, 8)
	assert.NotNil(t, sim.config.Clock)
}

func TestRunSimulation_Convenience(t *testing.T) {
	report, err := RunSimulation(context.Background(), 20, 3, 12345, quietLogger())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, 20, report.Stats.Games)
	assert.Len(t, report.Results, 20)
	require.NoError(t, report.Stats.Validate())
}

func TestSimulator_Run(t *testing.T) {
	sim := New(Config{
		Games:   50,
		Players: 5,
		Seed:    7,
		Workers: 4,
		Timeout: 5 * time.Second,
		Logger:  quietLogger(),
		Clock:   quartz.NewMock(t),
	})

	report, err := sim.Run(context.Background())
	require.NoError(t, err)

	stats := report.Stats
	assert.Equal(t, 50, stats.Games)
	assert.LessOrEqual(t, len(stats.Wins), 5)
	require.NoError(t, stats.Validate())

	for i, r := range report.Results {
		assert.Equal(t, int64(7+i), r.Seed)
		assert.Equal(t, 5, r.Players)
		assert.GreaterOrEqual(t, r.Winner, 0)
		assert.Less(t, r.Winner, 5)
		assert.Positive(t, r.Turns)
		assert.Positive(t, r.Rolls)
		assert.Less(t, r.Center, 15)
		assert.GreaterOrEqual(t, r.Eliminations, 4)
	}
	assert.Zero(t, report.Elapsed, "mock clock does not advance")
}

func TestSimulator_DeterministicAcrossWorkers(t *testing.T) {
	run := func(workers int) *Report {
		report, err := New(Config{Games: 40, Players: 4, Seed: 99, Workers: workers, Logger: quietLogger()}).Run(context.Background())
		require.NoError(t, err)
		return report
	}

	serial := run(1)
	parallel := run(8)

	assert.Equal(t, serial.Results, parallel.Results)
	assert.Equal(t, serial.Stats.Wins, parallel.Stats.Wins)
	assert.Equal(t, serial.Stats.Mean(), parallel.Stats.Mean())
}

func TestSimulator_MatchesEngineReplay(t *testing.T) {
	report, err := New(Config{Games: 1, Players: 3, Seed: 31, Logger: quietLogger()}).Run(context.Background())
	require.NoError(t, err)

	replay := game.NewTestEngine(game.WithSeed(31), game.WithPlayers("a", "b", "c"))
	winner, err := replay.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, winner.Index, report.Results[0].Winner)
	assert.Equal(t, replay.Turns(), report.Results[0].Turns)
}

func TestSimulator_InvalidConfig(t *testing.T) {
	_, err := New(Config{Games: 0, Players: 3}).Run(context.Background())
	assert.Error(t, err)

	_, err = New(Config{Games: 10, Players: 2}).Run(context.Background())
	assert.True(t, errors.Is(err, game.ErrInvalidSetup))
}

func TestSimulator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Games: 10, Players: 3, Logger: quietLogger()}).Run(ctx)
	assert.Error(t, err)
}

func TestPrintSummary(t *testing.T) {
	report, err := New(Config{Games: 10, Players: 3, Seed: 1, Logger: quietLogger()}).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "10 games, 3 players")
	assert.Contains(t, out, "GAME LENGTH")
	assert.Contains(t, out, "Seat 3:")
}
