package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/leftrightcenter/internal/fileutil"
	"github.com/lox/leftrightcenter/internal/randutil"
	"github.com/lox/leftrightcenter/internal/simulator"
)

type SimulateCmd struct {
	Games   int           `short:"g" help:"Number of games to simulate"`
	Players int           `short:"p" help:"Players per game"`
	Seed    *int64        `help:"Seed for the first game; game i uses seed+i (random if unset)"`
	Workers int           `short:"w" help:"Parallel workers (default: CPUs, at most 8)"`
	Timeout time.Duration `help:"Per-game timeout"`
	Report  string        `help:"Write the full report as JSON to this file" type:"path"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if c.Games > 0 {
		cfg.Simulate.Games = c.Games
	}
	if c.Players > 0 {
		cfg.Simulate.Players = c.Players
	}
	if c.Workers > 0 {
		cfg.Simulate.Workers = c.Workers
	}
	if c.Timeout > 0 {
		cfg.Simulate.Timeout = c.Timeout.String()
	}
	if c.Seed != nil {
		cfg.Game.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := log.WarnLevel
	if g.Debug {
		level = log.DebugLevel
	}
	logger := setupLogger(os.Stderr, level, "SIM")

	seed, err := randutil.SeedOrNew(cfg.Game.Seed)
	if err != nil {
		return err
	}
	timeout, err := cfg.Simulate.TimeoutDuration()
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	fmt.Printf("Starting simulation: %d games, %d players (seed: %d)\n", cfg.Simulate.Games, cfg.Simulate.Players, seed)

	report, err := simulator.New(simulator.Config{
		Games:   cfg.Simulate.Games,
		Players: cfg.Simulate.Players,
		Seed:    seed,
		Workers: cfg.Simulate.Workers,
		Timeout: timeout,
		Logger:  logger,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, report)

	if c.Report != "" {
		if err := fileutil.WriteJSONAtomic(c.Report, report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("\nReport written to %s\n", c.Report)
	}
	return nil
}
