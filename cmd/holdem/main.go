package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/redis/go-redis/v9"

	"github.com/lox/holdem-table/internal/settings"
	"github.com/lox/holdem-table/internal/tui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

type CLI struct {
	NoColor bool `help:"Disable colored output"`

	Play     PlayCmd     `cmd:"" default:"withargs" help:"Play a game against the computer"`
	Simulate SimulateCmd `cmd:"" help:"Run computer-only rounds without a terminal UI"`
	Odds     OddsCmd     `cmd:"" help:"Score a hand and show its odds"`
	Settings SettingsCmd `cmd:"" help:"Show or change saved settings"`
}

// StoreFlags selects where settings are kept
type StoreFlags struct {
	SettingsFile string `help:"File to keep settings in" default:".holdem-settings" type:"path"`
	Redis        string `help:"Redis address to keep settings in instead of a file"`
	RedisKey     string `help:"Redis hash for settings" default:"holdem:settings"`
}

func (f StoreFlags) open() (settings.Store, func() error) {
	if f.Redis == "" {
		return settings.NewFileStore(f.SettingsFile), func() error { return nil }
	}
	rdb := redis.NewClient(&redis.Options{Addr: f.Redis})
	return settings.NewRedisStore(rdb, f.RedisKey), rdb.Close
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em at a single table against computer players"),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)

	if cli.NoColor {
		tui.DisableColor()
	}

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func printField(label string, value any) {
	fmt.Printf("%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(fmt.Sprint(value)))
}
