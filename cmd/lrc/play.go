package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/leftrightcenter/internal/game"
	"github.com/lox/leftrightcenter/internal/randutil"
	"github.com/lox/leftrightcenter/internal/tui"
)

type PlayCmd struct {
	Players int      `short:"p" help:"Initial player count on the setup screen (3-50)"`
	Names   []string `short:"n" help:"Default player names, in seat order"`
	Seed    *int64   `help:"RNG seed for reproducible dice (random if unset)"`
	LogFile string   `name:"log-file" help:"Debug log file (the terminal belongs to the game)" type:"path"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if c.Players > 0 {
		cfg.Game.Players = c.Players
	}
	if len(c.Names) > 0 {
		cfg.Game.Names = c.Names
		cfg.Game.Players = max(cfg.Game.Players, len(c.Names))
	}
	if c.Seed != nil {
		cfg.Game.Seed = c.Seed
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	debugFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create debug log: %w", err)
	}
	defer func() {
		if err := debugFile.Close(); err != nil {
			log.Error("Failed to close debug file", "error", err)
		}
	}()

	logger := setupLogger(debugFile, cfg.LogLevel(), "LRC")

	seed, err := randutil.SeedOrNew(cfg.Game.Seed)
	if err != nil {
		return err
	}
	logger.Info("Starting interactive game", "players", cfg.Game.Players, "seed", seed)

	bus := game.NewEventBus()
	bus.Subscribe(game.NewLogSubscriber(logger))

	factory := tui.NewEngineFactory(
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger),
		game.WithEventBus(bus),
	)
	model := tui.NewModel(logger, factory,
		tui.WithPlayerCount(cfg.Game.Players),
		tui.WithDefaultNames(cfg.Game.Names),
	)

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	if err := tui.Run(ctx, model); err != nil {
		return err
	}
	logger.Info("Goodbye")
	return nil
}
