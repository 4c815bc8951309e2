// Package config loads table and interface settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/settings"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the complete table configuration
type Config struct {
	Table TableSettings
	UI    UISettings
}

// TableSettings controls the game itself
type TableSettings struct {
	HumanName         string `hcl:"human_name,optional"`
	Opponents         int    `hcl:"opponents,optional"`
	StartingMoney     int    `hcl:"starting_money,optional"`
	MinimumBet        int    `hcl:"minimum_bet,optional"`
	MaximumBet        int    `hcl:"maximum_bet,optional"`
	MaxRaisesPerRound int    `hcl:"max_raises_per_round,optional"`
}

// UISettings controls the terminal front-end
type UISettings struct {
	LogLevel      string `hcl:"log_level,optional"`
	LogFile       string `hcl:"log_file,optional"`
	HandLog       string `hcl:"hand_log,optional"`
	Mute          bool   `hcl:"mute,optional"`
	Animate       bool   `hcl:"animate,optional"`
	ShowAllCards  bool   `hcl:"show_all_cards,optional"`
	DealDelayMs   int    `hcl:"deal_delay_ms,optional"`
	ActionDelayMs int    `hcl:"action_delay_ms,optional"`
	BlindDelayMs  int    `hcl:"blind_delay_ms,optional"`
}

// fileUI mirrors UISettings with optional flags, so an absent attribute
// leaves the base value alone
type fileUI struct {
	LogLevel      string `hcl:"log_level,optional"`
	LogFile       string `hcl:"log_file,optional"`
	HandLog       string `hcl:"hand_log,optional"`
	Mute          *bool  `hcl:"mute,optional"`
	Animate       *bool  `hcl:"animate,optional"`
	ShowAllCards  *bool  `hcl:"show_all_cards,optional"`
	DealDelayMs   int    `hcl:"deal_delay_ms,optional"`
	ActionDelayMs int    `hcl:"action_delay_ms,optional"`
	BlindDelayMs  int    `hcl:"blind_delay_ms,optional"`
}

type fileConfig struct {
	Table *TableSettings `hcl:"table,block"`
	UI    *fileUI        `hcl:"ui,block"`
}

// Default returns the built-in configuration
func Default() *Config {
	pacing := game.DefaultPacing()
	return &Config{
		Table: TableSettings{
			HumanName:         "Player1",
			Opponents:         2,
			StartingMoney:     1000,
			MinimumBet:        5,
			MaxRaisesPerRound: game.DefaultMaxRaises,
		},
		UI: UISettings{
			LogLevel:      "info",
			LogFile:       "holdem.log",
			HandLog:       "holdem-hands.log",
			DealDelayMs:   int(pacing.Deal / time.Millisecond),
			ActionDelayMs: int(pacing.Action / time.Millisecond),
			BlindDelayMs:  int(pacing.Blind / time.Millisecond),
		},
	}
}

// Load reads filename, filling anything it leaves out from Default. A
// missing file is not an error.
func Load(filename string) (*Config, error) {
	return LoadOver(Default(), filename)
}

// LoadOver reads filename on top of base, so values from the file win
func LoadOver(base *Config, filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return base, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := base
	if fc.Table != nil {
		mergeTable(&cfg.Table, *fc.Table)
	}
	if fc.UI != nil {
		mergeUI(&cfg.UI, *fc.UI)
	}
	return cfg, nil
}

func mergeTable(dst *TableSettings, src TableSettings) {
	if src.HumanName != "" {
		dst.HumanName = src.HumanName
	}
	if src.Opponents != 0 {
		dst.Opponents = src.Opponents
	}
	if src.StartingMoney != 0 {
		dst.StartingMoney = src.StartingMoney
	}
	if src.MinimumBet != 0 {
		dst.MinimumBet = src.MinimumBet
	}
	if src.MaximumBet != 0 {
		dst.MaximumBet = src.MaximumBet
	}
	if src.MaxRaisesPerRound != 0 {
		dst.MaxRaisesPerRound = src.MaxRaisesPerRound
	}
}

func mergeUI(dst *UISettings, src fileUI) {
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
	if src.HandLog != "" {
		dst.HandLog = src.HandLog
	}
	if src.DealDelayMs != 0 {
		dst.DealDelayMs = src.DealDelayMs
	}
	if src.ActionDelayMs != 0 {
		dst.ActionDelayMs = src.ActionDelayMs
	}
	if src.BlindDelayMs != 0 {
		dst.BlindDelayMs = src.BlindDelayMs
	}
	if src.Mute != nil {
		dst.Mute = *src.Mute
	}
	if src.Animate != nil {
		dst.Animate = *src.Animate
	}
	if src.ShowAllCards != nil {
		dst.ShowAllCards = *src.ShowAllCards
	}
}

// Validate checks the table limits
func (c *Config) Validate() error {
	t := c.Table
	switch {
	case t.Opponents < 1 || t.Opponents > 3:
		return fmt.Errorf("%w: opponents must be 1-3, got %d", ErrInvalid, t.Opponents)
	case t.StartingMoney < 100 || t.StartingMoney > 10000:
		return fmt.Errorf("%w: starting money must be 100-10000, got %d", ErrInvalid, t.StartingMoney)
	case t.MinimumBet < 2 || t.MinimumBet > t.StartingMoney/10:
		return fmt.Errorf("%w: minimum bet must be 2-%d, got %d", ErrInvalid, t.StartingMoney/10, t.MinimumBet)
	case t.MaximumBet != 0 && t.MaximumBet < t.MinimumBet:
		return fmt.Errorf("%w: maximum bet %d is below minimum bet %d", ErrInvalid, t.MaximumBet, t.MinimumBet)
	case t.MaxRaisesPerRound < 1:
		return fmt.Errorf("%w: max raises per round must be positive, got %d", ErrInvalid, t.MaxRaisesPerRound)
	}
	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// BigBlind equals the minimum bet
func (c *Config) BigBlind() int { return c.Table.MinimumBet }

// SmallBlind is half the big blind, rounded down
func (c *Config) SmallBlind() int { return c.BigBlind() / 2 }

// MaximumBet returns the configured cap, or half the starting money
func (c *Config) MaximumBet() int {
	if c.Table.MaximumBet > 0 {
		return c.Table.MaximumBet
	}
	return c.Table.StartingMoney * 50 / 100
}

// Rules returns the betting limits for the game
func (c *Config) Rules() game.TableRules {
	return game.TableRules{
		SmallBlind:        c.SmallBlind(),
		BigBlind:          c.BigBlind(),
		MinimumBet:        c.Table.MinimumBet,
		MaximumBet:        c.MaximumBet(),
		MaxRaisesPerRound: c.Table.MaxRaisesPerRound,
	}
}

// Pacing returns the delays between visible steps
func (c *Config) Pacing() game.PacingConfig {
	return game.PacingConfig{
		Deal:   time.Duration(c.UI.DealDelayMs) * time.Millisecond,
		Action: time.Duration(c.UI.ActionDelayMs) * time.Millisecond,
		Blind:  time.Duration(c.UI.BlindDelayMs) * time.Millisecond,
	}
}

// ApplySettings overlays persisted player preferences
func (c *Config) ApplySettings(s settings.Settings) {
	c.Table.StartingMoney = s.StartingMoney
	c.Table.MinimumBet = s.MinimumBet
	c.UI.Mute = !s.EnableAudio
	c.UI.Animate = !s.DisableAnimations
}

// Settings returns the persisted subset of the configuration
func (c *Config) Settings() settings.Settings {
	return settings.Settings{
		StartingMoney:     c.Table.StartingMoney,
		MinimumBet:        c.Table.MinimumBet,
		EnableAudio:       !c.UI.Mute,
		DisableAnimations: !c.UI.Animate,
	}
}
