package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/config"
)

type SettingsCmd struct {
	StoreFlags `embed:""`

	StartingMoney *int  `help:"Starting stack for new games"`
	MinimumBet    *int  `help:"Minimum bet and big blind"`
	Audio         *bool `help:"Enable sound cues"`
	Animations    *bool `help:"Animate the pot"`
}

func (c *SettingsCmd) Run(ctx context.Context) error {
	store, closeStore := c.open()
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("Failed to close settings store", "error", err)
		}
	}()

	s, err := store.Load(ctx)
	if err != nil {
		return err
	}

	changed := false
	if c.StartingMoney != nil {
		s.StartingMoney = *c.StartingMoney
		changed = true
	}
	if c.MinimumBet != nil {
		s.MinimumBet = *c.MinimumBet
		changed = true
	}
	if c.Audio != nil {
		s.EnableAudio = *c.Audio
		changed = true
	}
	if c.Animations != nil {
		s.DisableAnimations = !*c.Animations
		changed = true
	}

	if changed {
		cfg := config.Default()
		cfg.ApplySettings(s)
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := store.Save(ctx, s); err != nil {
			return err
		}
		fmt.Println(winStyle.Render("Settings saved"))
	}

	values := s.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		printField(k, values[k])
	}
	return nil
}
