package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/leftrightcenter/internal/game"
	"github.com/lox/leftrightcenter/internal/randutil"
	"github.com/lox/leftrightcenter/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Players int
	Seed    int64
	Workers int           // 0 means runtime.NumCPU(), capped at 8
	Timeout time.Duration // per game; 0 disables
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Report is the outcome of a simulation run
type Report struct {
	Games   int                     `json:"games"`
	Players int                     `json:"players"`
	Seed    int64                   `json:"seed"`
	Workers int                     `json:"workers"`
	Elapsed time.Duration           `json:"elapsed_ns"`
	Stats   *statistics.Statistics  `json:"stats"`
	Results []statistics.GameResult `json:"results,omitempty"`
}

// Simulator plays many independent games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Workers <= 0 {
		config.Workers = min(runtime.NumCPU(), 8)
	}
	return &Simulator{config: config}
}

// Run plays Games games with seeds Seed, Seed+1, ... and aggregates the
// results in seed order, so the report does not depend on worker count.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	if s.config.Players < game.MinPlayers {
		return nil, fmt.Errorf("%w: need at least %d players, got %d", game.ErrInvalidSetup, game.MinPlayers, s.config.Players)
	}

	logger := s.config.Logger.WithPrefix("simulator")
	start := s.config.Clock.Now()
	logger.Info("Starting simulation", "games", s.config.Games, "players", s.config.Players, "seed", s.config.Seed, "workers", s.config.Workers)

	results := make([]statistics.GameResult, s.config.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := 0; i < s.config.Games; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			result, err := s.playGameWithTimeout(gctx, seed)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Now().Sub(start)
	logger.Info("Simulation complete", "games", stats.Games, "mean_turns", stats.Mean(), "elapsed", elapsed)

	return &Report{
		Games:   s.config.Games,
		Players: s.config.Players,
		Seed:    s.config.Seed,
		Workers: s.config.Workers,
		Elapsed: elapsed,
		Stats:   stats,
		Results: results,
	}, nil
}

// playGameWithTimeout runs a single game with timeout protection
func (s *Simulator) playGameWithTimeout(ctx context.Context, seed int64) (statistics.GameResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	result, err := s.playGame(ctx, seed)
	if errors.Is(err, context.DeadlineExceeded) {
		return result, fmt.Errorf("game timed out after %v (seed: %d)", s.config.Timeout, seed)
	}
	return result, err
}

// playGame simulates one game to completion
func (s *Simulator) playGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	names := make([]string, s.config.Players)
	for i := range names {
		names[i] = fmt.Sprintf("Seat%d", i+1)
	}

	result := statistics.GameResult{Seed: seed, Players: s.config.Players, Winner: -1}

	bus := game.NewEventBus()
	bus.Subscribe(game.EventSubscriberFunc(func(ev game.GameEvent) {
		switch e := ev.(type) {
		case game.TurnEvent:
			result.Rolls += len(e.Result.Faces)
		case game.PlayerEliminatedEvent:
			result.Eliminations++
		}
	}))

	engine, err := game.New(s.config.Players, names,
		game.WithRNG(randutil.New(seed)),
		game.WithEventBus(bus),
		game.WithClock(s.config.Clock),
		game.WithLogger(s.config.Logger),
		game.WithID(fmt.Sprintf("sim-%d", seed)),
	)
	if err != nil {
		return result, err
	}

	winner, err := engine.Run(ctx)
	if err != nil {
		s.config.Logger.Error("Failed to play game", "error", err, "seed", seed)
		return result, err
	}

	result.Winner = winner.Index
	result.Turns = engine.Turns()
	result.Center = engine.Center()
	return result, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, games, players int, seed int64, logger *log.Logger) (*Report, error) {
	return New(Config{
		Games:   games,
		Players: players,
		Seed:    seed,
		Timeout: 5 * time.Second,
		Logger:  logger,
	}).Run(ctx)
}

// PrintSummary writes a human-readable summary of a simulation report
func PrintSummary(w io.Writer, report *Report) {
	stats := report.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== LEFT RIGHT CENTER: %d games, %d players ===\n", report.Games, report.Players)
	fmt.Fprintf(w, "Seed: %d  Workers: %d  Elapsed: %v\n", report.Seed, report.Workers, report.Elapsed.Round(time.Millisecond))

	fmt.Fprintf(w, "\n=== GAME LENGTH (turns) ===\n")
	fmt.Fprintf(w, "Mean: %.2f  Median: %.1f  Std Dev: %.2f\n", stats.Mean(), stats.Median(), stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Shortest: %d  Longest: %d\n", stats.MinTurns, stats.MaxTurns)
	fmt.Fprintf(w, "Dice per turn: %.2f\n", stats.RollsPerTurn())

	fmt.Fprintf(w, "\n=== CENTER POOL ===\n")
	fmt.Fprintf(w, "Mean retired: %.2f of %d chips  Max: %d\n", stats.CenterMean(), 3*report.Players, stats.MaxCenter)
	fmt.Fprintf(w, "Eliminations per game: %.2f\n", float64(stats.Eliminations)/float64(stats.Games))

	fmt.Fprintf(w, "\n=== WINS BY SEAT ===\n")
	for seat := 0; seat < report.Players; seat++ {
		wins := 0
		if seat < len(stats.Wins) {
			wins = stats.Wins[seat]
		}
		fmt.Fprintf(w, "Seat %d: %d wins (%.1f%%)\n", seat+1, wins, stats.WinRate(seat)*100)
	}
}
