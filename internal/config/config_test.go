package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/holdem-table/internal/settings"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Table.StartingMoney != 1000 || cfg.Table.MinimumBet != 5 || cfg.Table.Opponents != 2 {
		t.Errorf("unexpected defaults: %+v", cfg.Table)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := writeConfig(t, `
table {
  opponents      = 3
  starting_money = 2000
  minimum_bet    = 20
}

ui {
  log_level      = "debug"
  show_all_cards = true
  deal_delay_ms  = 100
}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Table.Opponents != 3 || cfg.Table.StartingMoney != 2000 || cfg.Table.MinimumBet != 20 {
		t.Errorf("table not merged: %+v", cfg.Table)
	}
	if cfg.Table.HumanName != "Player1" {
		t.Errorf("HumanName = %q, want default", cfg.Table.HumanName)
	}
	if !cfg.UI.ShowAllCards || cfg.UI.LogLevel != "debug" {
		t.Errorf("ui not merged: %+v", cfg.UI)
	}
	if cfg.UI.LogFile != "holdem.log" {
		t.Errorf("LogFile = %q, want default", cfg.UI.LogFile)
	}

	rules := cfg.Rules()
	if rules.BigBlind != 20 || rules.SmallBlind != 10 || rules.MaximumBet != 1000 {
		t.Errorf("Rules() = %+v", rules)
	}
	if p := cfg.Pacing(); p.Deal != 100*time.Millisecond || p.Blind != time.Second {
		t.Errorf("Pacing() = %+v", p)
	}
}

func TestLoadOnlyUIBlock(t *testing.T) {
	cfg, err := Load(writeConfig(t, `ui { mute = true }`))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.UI.Mute || cfg.Table.StartingMoney != 1000 {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadRejectsBadHCL(t *testing.T) {
	if _, err := Load(writeConfig(t, `table { opponents = `)); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Load(writeConfig(t, `table { colour = "red" }`)); err == nil {
		t.Error("expected decode error for unknown attribute")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no opponents", func(c *Config) { c.Table.Opponents = 0 }},
		{"too many opponents", func(c *Config) { c.Table.Opponents = 4 }},
		{"starting money too low", func(c *Config) { c.Table.StartingMoney = 99 }},
		{"starting money too high", func(c *Config) { c.Table.StartingMoney = 10001 }},
		{"minimum bet too low", func(c *Config) { c.Table.MinimumBet = 1 }},
		{"minimum bet above a tenth of the stack", func(c *Config) { c.Table.MinimumBet = 101 }},
		{"maximum below minimum", func(c *Config) { c.Table.MaximumBet = 2 }},
		{"no raises", func(c *Config) { c.Table.MaxRaisesPerRound = 0 }},
		{"bad log level", func(c *Config) { c.UI.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.ApplySettings(settings.Settings{StartingMoney: 500, MinimumBet: 10, EnableAudio: false, DisableAnimations: false})

	if cfg.Table.StartingMoney != 500 || cfg.Table.MinimumBet != 10 || !cfg.UI.Mute || !cfg.UI.Animate {
		t.Errorf("ApplySettings: %+v %+v", cfg.Table, cfg.UI)
	}
	if got := cfg.Settings(); got.StartingMoney != 500 || got.EnableAudio || got.DisableAnimations {
		t.Errorf("Settings() = %+v", got)
	}
	if cfg.MaximumBet() != 250 {
		t.Errorf("MaximumBet() = %d, want half the stack", cfg.MaximumBet())
	}
}

func TestLoadOverKeepsBaseForMissingFields(t *testing.T) {
	base := Default()
	base.ApplySettings(settings.Settings{StartingMoney: 3000, MinimumBet: 10, EnableAudio: false, DisableAnimations: false})

	path := writeConfig(t, `
table {
  minimum_bet = 25
}
`)
	cfg, err := LoadOver(base, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Table.StartingMoney != 3000 {
		t.Errorf("StartingMoney = %d, want 3000 from base", cfg.Table.StartingMoney)
	}
	if cfg.Table.MinimumBet != 25 {
		t.Errorf("MinimumBet = %d, want 25 from file", cfg.Table.MinimumBet)
	}
	if !cfg.UI.Mute || !cfg.UI.Animate {
		t.Errorf("UI = %+v, want mute and animate from base", cfg.UI)
	}
}

func TestLoadOverUIBlockKeepsUnsetFlags(t *testing.T) {
	base := Default()
	base.ApplySettings(settings.Settings{StartingMoney: 1000, MinimumBet: 5, EnableAudio: false, DisableAnimations: false})
	base.UI.ShowAllCards = true

	path := writeConfig(t, `
ui {
  log_level = "debug"
}
`)
	cfg, err := LoadOver(base, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug from file", cfg.UI.LogLevel)
	}
	if !cfg.UI.Mute || !cfg.UI.Animate || !cfg.UI.ShowAllCards {
		t.Errorf("UI = %+v, want flags kept from base", cfg.UI)
	}
	if got := cfg.Settings(); got.EnableAudio || got.DisableAnimations {
		t.Errorf("Settings() = %+v, want stored preferences unchanged", got)
	}
}

func TestLoadOverUIBlockSetsFlagsFalse(t *testing.T) {
	base := Default()
	base.UI.Mute = true
	base.UI.Animate = true

	path := writeConfig(t, `
ui {
  mute    = false
  animate = false
}
`)
	cfg, err := LoadOver(base, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Mute || cfg.UI.Animate {
		t.Errorf("UI = %+v, want flags cleared by file", cfg.UI)
	}
}
