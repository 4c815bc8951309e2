package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/config"
	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/handlog"
	"github.com/lox/holdem-table/internal/phh"
	"github.com/lox/holdem-table/internal/randutil"
	"github.com/lox/holdem-table/internal/tui"
)

type PlayCmd struct {
	StoreFlags `embed:""`

	Config       string `short:"c" help:"HCL table config" default:"holdem.hcl" type:"path"`
	Opponents    int    `short:"o" help:"Number of computer opponents (1-3), overrides the config"`
	Name         string `help:"Your name at the table"`
	ShowAllCards bool   `help:"Reveal every player's hole cards"`
	HandHistory  string `help:"Append rounds in PHH format to this file" type:"path"`
	Seed         *int64 `help:"Random seed for a reproducible game"`
}

func (c *PlayCmd) Run(ctx context.Context) error {
	store, closeStore := c.open()
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("Failed to close settings store", "error", err)
		}
	}()

	saved, err := store.Load(ctx)
	if err != nil {
		return err
	}

	base := config.Default()
	base.ApplySettings(saved)
	cfg, err := config.LoadOver(base, c.Config)
	if err != nil {
		return err
	}
	if c.Opponents != 0 {
		cfg.Table.Opponents = c.Opponents
	}
	if c.Name != "" {
		cfg.Table.HumanName = c.Name
	}
	if c.ShowAllCards {
		cfg.UI.ShowAllCards = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	level, _ := log.ParseLevel(cfg.UI.LogLevel)
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "holdem",
		Level:           level,
	})

	rng, seed := randutil.FromFlag(c.Seed)
	logger.Info("Starting interactive game", "seed", seed, "opponents", cfg.Table.Opponents, "starting_money", cfg.Table.StartingMoney)

	model := tui.NewModel(tui.Options{
		HumanName:    cfg.Table.HumanName,
		ShowAllCards: cfg.UI.ShowAllCards,
		Animate:      cfg.UI.Animate,
		Mute:         cfg.UI.Mute,
		Logger:       logger.WithPrefix("tui"),
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	bridge := tui.NewBridge(program, model)

	bus := game.NewEventBus()
	bus.Subscribe(bridge)

	if cfg.UI.HandLog != "" {
		hands, closer, err := handlog.Open(cfg.UI.HandLog, handlog.Options{Perspective: cfg.Table.HumanName}, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn("Failed to close hand log", "error", err)
			}
		}()
		bus.Subscribe(hands)
	}

	if c.HandHistory != "" {
		rec, closer, err := phh.OpenSession(c.HandHistory, "holdem", cfg.BigBlind(), logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn("Failed to close hand history", "error", err)
			}
		}()
		bus.Subscribe(rec)
	}

	g, err := game.NewGame(game.Options{
		Opponents:     cfg.Table.Opponents,
		StartingMoney: cfg.Table.StartingMoney,
		HumanName:     cfg.Table.HumanName,
		Rules:         cfg.Rules(),
		Pacing:        cfg.Pacing(),
		AnimatePot:    cfg.UI.Animate,
		Human:         bridge,
		Bus:           bus,
		RNG:           rng,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	gameCtx, cancel := context.WithCancel(ctx)
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- playLoop(gameCtx, g, bridge, logger)
	}()

	_, runErr := program.Run()
	cancel()
	if err := <-loopErr; err != nil {
		logger.Error("Game loop failed", "error", err)
		if runErr == nil {
			runErr = err
		}
	}

	if err := store.Save(ctx, cfg.Settings()); err != nil {
		logger.Warn("Failed to save settings", "error", err)
	}
	return runErr
}

// playLoop deals rounds until the session ends or the player leaves
func playLoop(ctx context.Context, g *game.Game, bridge *tui.Bridge, logger *log.Logger) error {
	for {
		result, err := g.PlayRound(ctx)
		switch {
		case errors.Is(err, game.ErrGameOver), errors.Is(err, context.Canceled):
			return nil
		case err != nil:
			return err
		}
		logger.Info("Round complete", "round", g.Rounds(), "pot", result.PotAmount, "winners", len(result.Winners))

		if g.Over() {
			return nil
		}

		next, err := bridge.WaitForNextRound(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if !next {
			logger.Info("Player left the table", "rounds", g.Rounds())
			return nil
		}
	}
}
