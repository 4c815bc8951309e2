// Package settings persists the player's table preferences as string
// key-value pairs, in a local file or a Redis hash.
package settings

import (
	"context"
	"strconv"
)

// Keys under which settings are stored
const (
	KeyStartingMoney     = "StartingMoney"
	KeyMinimumBet        = "MinimumBet"
	KeyEnableAudio       = "EnableAudio"
	KeyDisableAnimations = "DisableAnimations"
)

// Settings are the preferences kept between sessions
type Settings struct {
	StartingMoney     int
	MinimumBet        int
	EnableAudio       bool
	DisableAnimations bool
}

// Defaults returns the settings used when nothing has been saved
func Defaults() Settings {
	return Settings{
		StartingMoney:     1000,
		MinimumBet:        5,
		EnableAudio:       true,
		DisableAnimations: true,
	}
}

// Store loads and saves settings
type Store interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// Values returns the settings as stored strings
func (s Settings) Values() map[string]string {
	return map[string]string{
		KeyStartingMoney:     strconv.Itoa(s.StartingMoney),
		KeyMinimumBet:        strconv.Itoa(s.MinimumBet),
		KeyEnableAudio:       strconv.FormatBool(s.EnableAudio),
		KeyDisableAnimations: strconv.FormatBool(s.DisableAnimations),
	}
}

// FromValues rebuilds settings from stored strings. Missing, unparsable or
// zero numbers fall back to the defaults, as do missing flags. A stored flag
// is true only when it is exactly "true".
func FromValues(values map[string]string) Settings {
	s := Defaults()
	if n, err := strconv.Atoi(values[KeyStartingMoney]); err == nil && n > 0 {
		s.StartingMoney = n
	}
	if n, err := strconv.Atoi(values[KeyMinimumBet]); err == nil && n > 0 {
		s.MinimumBet = n
	}
	if v := values[KeyEnableAudio]; v != "" {
		s.EnableAudio = v == "true"
	}
	if v := values[KeyDisableAnimations]; v != "" {
		s.DisableAnimations = v == "true"
	}
	return s
}
