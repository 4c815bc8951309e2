package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/config"
	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/handlog"
	"github.com/lox/holdem-table/internal/phh"
	"github.com/lox/holdem-table/internal/randutil"
	"github.com/lox/holdem-table/internal/statistics"
)

type SimulateCmd struct {
	Rounds        int    `short:"n" help:"Maximum number of rounds to play" default:"100"`
	Opponents     int    `short:"o" help:"Number of opponents for the first seat (1-3)" default:"3"`
	StartingMoney int    `help:"Starting stack for every seat" default:"1000"`
	MinimumBet    int    `help:"Minimum bet and big blind" default:"5"`
	Seed          *int64 `help:"Random seed for reproducible results"`
	HandLog       string `help:"Write the hand log to this file" type:"path"`
	HandHistory   string `help:"Append rounds in PHH format to this file" type:"path"`
	Verbose       bool   `short:"v" help:"Log every round"`
}

func (c *SimulateCmd) Run(ctx context.Context) error {
	cfg := config.Default()
	cfg.Table.Opponents = c.Opponents
	cfg.Table.StartingMoney = c.StartingMoney
	cfg.Table.MinimumBet = c.MinimumBet
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "simulate"})

	rng, seed := randutil.FromFlag(c.Seed)
	bus := game.NewEventBus()
	tracker := statistics.NewTracker(cfg.BigBlind())
	bus.Subscribe(tracker)

	if c.HandLog != "" {
		hands, closer, err := handlog.Open(c.HandLog, handlog.Options{ShowAllCards: true}, logger)
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
		Bus:           bus,
		RNG:           rng,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	players := append([]*game.Player(nil), g.Players()...)
	remainder := 0

	for i := 0; i < c.Rounds; i++ {
		result, err := g.PlayRound(ctx)
		if errors.Is(err, game.ErrGameOver) {
			break
		}
		if err != nil {
			return err
		}
		remainder += result.Remainder
		if g.Over() {
			break
		}
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Simulation ♦ ♣ "))
	fmt.Println()
	printField("Seed", seed)
	printField("Rounds", g.Rounds())
	if remainder > 0 {
		printField("Chips lost to splits", remainder)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{
		labelStyle.Render("Player"),
		labelStyle.Render("Money"),
		labelStyle.Render("Won"),
		labelStyle.Render("Showdown"),
		labelStyle.Render("bb/round"),
		labelStyle.Render("95% CI"),
	}, "\t"))
	for _, p := range players {
		st, _ := tracker.Player(p.Name)
		lo, hi := st.ConfidenceInterval95()
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%+.2f\t[%+.2f, %+.2f]\n",
			p.Name, p.Money, st.Wins(), st.ShowdownWins, st.Mean(), lo, hi)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if winner, reason := g.Winner(); winner != nil {
		fmt.Println()
		fmt.Println(winStyle.Render(fmt.Sprintf("%s wins the game with $%d (%s)", winner.Name, winner.Money, reason)))
	}
	return nil
}
